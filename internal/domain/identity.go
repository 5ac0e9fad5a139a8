package domain

// Role is the caller's role as asserted by the account service.
type Role string

// Known roles.
const (
	RoleCourier    Role = "courier"
	RoleCustomer   Role = "customer"
	RoleShopkeeper Role = "shopkeeper"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCourier, RoleCustomer, RoleShopkeeper, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity is an authenticated caller.
type Identity struct {
	UserID string
	Role   Role
	// StoreID is set for shopkeepers.
	StoreID string
}

// CanView reports whether the caller may observe d's tracking stream.
func (id Identity) CanView(d *Delivery) bool {
	switch id.Role {
	case RoleAdmin:
		return true
	case RoleCustomer:
		return d.CustomerID != "" && d.CustomerID == id.UserID
	case RoleShopkeeper:
		return d.StoreID != "" && d.StoreID == id.StoreID
	case RoleCourier:
		return d.CourierID != "" && d.CourierID == id.UserID && d.Status.Live()
	default:
		return false
	}
}

// System is the identity used for transitions the service performs on its own behalf,
// such as cancellations that arrive from the order stream.
var System = Identity{UserID: "system", Role: RoleAdmin}
