package entity

// Role represents the permission class an identity holds in the supply chain.
type Role string

const (
	// RoleNone indicates an unregistered identity.
	RoleNone Role = "none"
	// RoleAdmin indicates the single owner/administrator identity.
	RoleAdmin Role = "admin"
	// RoleSupplier indicates the single raw-material supplier identity.
	RoleSupplier Role = "supplier"
	// RoleManufacturer indicates a medicine manufacturer.
	RoleManufacturer Role = "manufacturer"
	// RoleWholesaler indicates a wholesaler.
	RoleWholesaler Role = "wholesaler"
	// RoleDistributor indicates a distributor.
	RoleDistributor Role = "distributor"
	// RoleCustomer indicates an end customer.
	RoleCustomer Role = "customer"
	// RoleTransporter indicates a transporter moving orders.
	RoleTransporter Role = "transporter"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleNone, RoleAdmin, RoleSupplier, RoleManufacturer,
		RoleWholesaler, RoleDistributor, RoleCustomer, RoleTransporter:
		return true
	default:
		return false
	}
}

// IsAssignable reports whether the role may be granted through participant
// registration. Admin is only reachable via ownership transfer and the
// supplier is pinned at bootstrap, so neither is assignable. RoleNone is
// assignable and acts as revocation.
func (r Role) IsAssignable() bool {
	switch r {
	case RoleNone, RoleManufacturer, RoleWholesaler, RoleDistributor,
		RoleCustomer, RoleTransporter:
		return true
	default:
		return false
	}
}

// RoleFromString parses a role string. Callers check IsValid.
func RoleFromString(s string) Role {
	return Role(s)
}
