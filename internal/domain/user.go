package domain

import "time"

type SysUser struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Email     string    `gorm:"uniqueIndex;size:200" json:"email" form:"email"`
	Password  string    `json:"-" form:"password"`
	Phone     string    `gorm:"size:32" json:"phone" form:"phone"`
	Level     string    `gorm:"size:16;default:'user'" json:"level" form:"level"` // user|admin
	Remark    string    `json:"remark" form:"remark"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysUser) TableName() string {
	return "sys_user"
}

type SysOprLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	OprName   string    `json:"opr_name"`
	OprIp     string    `json:"opr_ip"`
	OptAction string    `json:"opt_action"`
	OptDesc   string    `json:"opt_desc"`
	OptTime   time.Time `json:"opt_time"`
}

// TableName Specify table name
func (SysOprLog) TableName() string {
	return "sys_opr_log"
}
