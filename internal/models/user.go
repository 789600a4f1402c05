package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleResident   UserRole = "RESIDENT"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleStaff      UserRole = "STAFF"
	RoleGatekeeper UserRole = "GATEKEEPER"
	RoleMember     UserRole = "MEMBER"
)

// AllRoles in the order the login selector shows them.
var AllRoles = []UserRole{
	RoleSuperAdmin,
	RoleAdmin,
	RoleResident,
	RoleAccountant,
	RoleStaff,
	RoleGatekeeper,
	RoleMember,
}

func ParseRole(s string) (UserRole, bool) {
	r := UserRole(s)
	return r, r.Valid()
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleResident, RoleAccountant,
		RoleStaff, RoleGatekeeper, RoleMember:
		return true
	}
	return false
}

// SeesAllReservations reports whether the role views every confirmed
// reservation instead of only its own. Adding a role without a case here
// falls through to the restricted view.
func (r UserRole) SeesAllReservations() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleStaff, RoleGatekeeper:
		return true
	case RoleResident, RoleAccountant, RoleMember:
		return false
	default:
		return false
	}
}

// SelfRegistrable: роли, доступные в публичной форме регистрации
func (r UserRole) SelfRegistrable() bool {
	switch r {
	case RoleMember, RoleAccountant, RoleStaff, RoleGatekeeper:
		return true
	}
	return false
}

// Label для шаблонов: SUPER_ADMIN -> SUPER ADMIN
func (r UserRole) Label() string {
	b := []byte(r)
	for i := range b {
		if b[i] == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}

type User struct {
	gorm.Model
	Email        string   `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string   `gorm:"not null"`
	Name         string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:MEMBER"`
	Image        string   `gorm:"size:512"`

	MemberProfile *MemberProfile
	FamilyMembers []FamilyMember
}

type MemberProfile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	FirstName    string `gorm:"size:100;not null"`
	MiddleName   string `gorm:"size:100"`
	LastName     string `gorm:"size:100;not null"`
	DOB          *time.Time
	Gender       string `gorm:"size:20"`
	MobileNumber string `gorm:"size:50"`
	Address      string `gorm:"type:text"`
	Status       string `gorm:"size:50"` // Owner / Tenant
	OccupiedDate *time.Time

	UnitID *uint
	Unit   *Unit

	CreatedAt time.Time
	UpdatedAt time.Time
}

type FamilyMember struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"index;not null"`
	Name     string `gorm:"size:255;not null"`
	Gender   string `gorm:"size:20"`
	DOB      *time.Time
	Relation string `gorm:"size:50"`
}
