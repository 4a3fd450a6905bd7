package domain

var Tables = []interface{}{
	// System
	&SysUser{},
	&SysOprLog{},
	// Catalog
	&Category{},
	&Product{},
	&GroomService{},
	// Booking
	&Pet{},
	&Appointment{},
}
