package config

import (
	"fmt"
	"os"
	"path"

	"github.com/durendeer/petcare/pkg/common"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Secret  string `yaml:"secret" json:"secret"`
	JwtExpm int    `yaml:"jwt_expm" json:"jwt_expm"` // token lifetime in minutes
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	From     string `yaml:"from" json:"from"`
}

// NotifyConfig configures the outbound notification channels. Channels with
// an empty endpoint/host are still registered; their transports report the
// failure and the dispatcher logs it.
type NotifyConfig struct {
	Timeout     int    `yaml:"timeout" json:"timeout"`           // per send, seconds
	PoolSize    int    `yaml:"pool_size" json:"pool_size"`       // dispatcher workers
	SmsGateway  string `yaml:"sms_gateway" json:"sms_gateway"`   // HTTP gateway endpoint
	SmsToken    string `yaml:"sms_token" json:"sms_token"`
	PushGateway string `yaml:"push_gateway" json:"push_gateway"` // HTTP gateway endpoint
	PushToken   string `yaml:"push_token" json:"push_token"`
	Whatsapp    bool   `yaml:"whatsapp" json:"whatsapp"` // enable whatsmeow channel
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
	Smtp     SmtpConfig   `yaml:"smtp" json:"smtp"`
	Notify   NotifyConfig `yaml:"notify" json:"notify"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(path.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(path.Join(c.System.Workdir, "data"), 0755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "PetCare",
		Location: "America/Sao_Paulo",
		Workdir:  "/var/petcare",
		Debug:    true,
	},
	Web: WebConfig{
		Host:    "0.0.0.0",
		Port:    1816,
		Secret:  "9b6de5cc-petcare-1816-9412f570ac85",
		JwtExpm: 120,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "petcare",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/petcare/petcare.log",
	},
	Smtp: SmtpConfig{
		Host:     "smtp.example.org",
		Port:     587,
		From:     "no-reply@example.org",
		Username: "no-reply@example.org",
		Passwd:   "secret",
	},
	Notify: NotifyConfig{
		Timeout:  10,
		PoolSize: 8,
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing path falls back to DefaultAppConfig.
func LoadConfig(cfile string) *AppConfig {
	appcfg := DefaultAppConfig
	if common.FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err == nil {
			appcfg = new(AppConfig)
			if err := yaml.Unmarshal(data, appcfg); err != nil {
				fmt.Fprintf(os.Stderr, "config parse error: %v\n", err)
				appcfg = DefaultAppConfig
			}
		}
	}

	setEnvValue("PETCARE_SYSTEM_WORKDIR", func(v string) { appcfg.System.Workdir = v })
	setEnvBoolValue("PETCARE_SYSTEM_DEBUG", func(v bool) { appcfg.System.Debug = v })
	setEnvValue("PETCARE_WEB_HOST", func(v string) { appcfg.Web.Host = v })
	setEnvIntValue("PETCARE_WEB_PORT", func(v int) { appcfg.Web.Port = v })
	setEnvValue("PETCARE_WEB_SECRET", func(v string) { appcfg.Web.Secret = v })
	setEnvValue("PETCARE_DB_TYPE", func(v string) { appcfg.Database.Type = v })
	setEnvValue("PETCARE_DB_HOST", func(v string) { appcfg.Database.Host = v })
	setEnvIntValue("PETCARE_DB_PORT", func(v int) { appcfg.Database.Port = v })
	setEnvValue("PETCARE_DB_NAME", func(v string) { appcfg.Database.Name = v })
	setEnvValue("PETCARE_DB_USER", func(v string) { appcfg.Database.User = v })
	setEnvValue("PETCARE_DB_PWD", func(v string) { appcfg.Database.Passwd = v })
	setEnvValue("PETCARE_SMTP_HOST", func(v string) { appcfg.Smtp.Host = v })
	setEnvIntValue("PETCARE_SMTP_PORT", func(v int) { appcfg.Smtp.Port = v })
	setEnvValue("PETCARE_SMTP_USER", func(v string) { appcfg.Smtp.Username = v })
	setEnvValue("PETCARE_SMTP_PWD", func(v string) { appcfg.Smtp.Passwd = v })

	appcfg.initDirs()
	return appcfg
}
