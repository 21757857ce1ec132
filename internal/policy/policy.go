// Package policy holds every admin-versus-owner decision.
package policy

import (
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
)

const (
	MsgUnauthorized         = "Unauthorized access."
	MsgOwnOrdersOnly        = "Unauthorized access. You can only manage your own orders."
	MsgAdminConfirmOnly     = "Unauthorized access. Only admin can confirm the order."
	MsgViewOwnRecordOnly    = "Unauthorized access. You can only view your own record."
	MsgUpdateOwnRecordOnly  = "Unauthorized access. You can only update your own record."
	MsgDeleteOwnRecordOnly  = "Unauthorized access. You can only delete your own record."
	MsgAdminRecordProtected = "You cannot delete this record or are unauthorized to delete it."
)

// Actor is the authenticated caller, passed explicitly into services.
type Actor struct {
	ID       uint64
	Username string
	IsAdmin  bool
}

// OwnerKey is the actor id in the string form stored on orders.user_id.
func (a Actor) OwnerKey() string {
	return strconv.FormatUint(a.ID, 10)
}

// Scope restricts order queries. An empty UserID means unrestricted.
type Scope struct {
	UserID string
}

func (s Scope) Unrestricted() bool {
	return s.UserID == ""
}

// Policy answers authorization questions for one actor.
type Policy interface {
	OrderScope() Scope
	CanAssignOrderOwner(userID string) error
	CanConfirmOrders() error
	CanListUsers() error
	CanCreateUsers() error
	CanViewUser(id uint64) error
	CanUpdateUser(id uint64) error
	CanDeleteUser(id uint64) error
}

// For picks the strategy matching the actor's role.
func For(actor Actor) Policy {
	if actor.IsAdmin {
		return adminPolicy{actor: actor}
	}
	return ownerPolicy{actor: actor}
}

// CanDeleteUserRecord refuses admin rows for every caller, then applies the actor policy.
func CanDeleteUserRecord(actor Actor, targetID uint64, targetIsAdmin bool) error {
	if targetIsAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, MsgAdminRecordProtected)
	}
	return For(actor).CanDeleteUser(targetID)
}

type adminPolicy struct {
	actor Actor
}

func (adminPolicy) OrderScope() Scope                { return Scope{} }
func (adminPolicy) CanAssignOrderOwner(string) error { return nil }
func (adminPolicy) CanConfirmOrders() error          { return nil }
func (adminPolicy) CanListUsers() error              { return nil }
func (adminPolicy) CanCreateUsers() error            { return nil }
func (adminPolicy) CanViewUser(uint64) error         { return nil }
func (adminPolicy) CanUpdateUser(uint64) error       { return nil }
func (adminPolicy) CanDeleteUser(uint64) error       { return nil }

type ownerPolicy struct {
	actor Actor
}

func (p ownerPolicy) OrderScope() Scope {
	return Scope{UserID: p.actor.OwnerKey()}
}

func (p ownerPolicy) CanAssignOrderOwner(userID string) error {
	if strings.TrimSpace(userID) != p.actor.OwnerKey() {
		return pkgerrors.New(pkgerrors.CodeForbidden, MsgOwnOrdersOnly)
	}
	return nil
}

func (ownerPolicy) CanConfirmOrders() error {
	return pkgerrors.New(pkgerrors.CodeForbidden, MsgAdminConfirmOnly)
}

func (ownerPolicy) CanListUsers() error {
	return pkgerrors.New(pkgerrors.CodeForbidden, MsgUnauthorized)
}

func (ownerPolicy) CanCreateUsers() error {
	return pkgerrors.New(pkgerrors.CodeForbidden, MsgUnauthorized)
}

func (p ownerPolicy) CanViewUser(id uint64) error {
	return p.self(id, MsgViewOwnRecordOnly)
}

func (p ownerPolicy) CanUpdateUser(id uint64) error {
	return p.self(id, MsgUpdateOwnRecordOnly)
}

func (p ownerPolicy) CanDeleteUser(id uint64) error {
	return p.self(id, MsgDeleteOwnRecordOnly)
}

func (p ownerPolicy) self(id uint64, message string) error {
	if id != p.actor.ID {
		return pkgerrors.New(pkgerrors.CodeForbidden, message)
	}
	return nil
}
