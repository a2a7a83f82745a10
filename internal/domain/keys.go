package domain

type CtxKey string

const (
	KeyStaffSubject CtxKey = "StaffSubject"
	KeyStaffEmail   CtxKey = "StaffEmail"
)
