package validate

// Statically declared input schemas, one per endpoint. Field rules live in
// validator/v10 tags and are compiled once at package init; the strict
// unknown-key policy is enforced against each schema's declared key set.

// CreateUserInput is the POST /users body
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
	Role     string `json:"role" validate:"required,oneof=admin cliente"`
}

// UpdateUserInput is the PATCH /users/:id body; all fields optional, password
// is not updatable through this path
type UpdateUserInput struct {
	Name  *string `json:"name" validate:"omitnil,min=1"`
	Email *string `json:"email" validate:"omitnil,email"`
	Role  *string `json:"role" validate:"omitnil,oneof=admin cliente"`
}

// FilterUsersInput is the GET /users query
type FilterUsersInput struct {
	Name   *string `json:"name" validate:"omitnil,min=1"`
	Email  *string `json:"email" validate:"omitnil,email"`
	Role   *string `json:"role" validate:"omitnil,oneof=admin cliente"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"` // 0 means unset; the query builder applies the default
}

// FilterCryptosInput is the GET /cryptos query
type FilterCryptosInput struct {
	ID     *string `json:"id" validate:"omitnil,min=1"`
	Name   *string `json:"name" validate:"omitnil,min=1"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// OrderField is one (field, direction) pair of an ordering list
type OrderField struct {
	Field     string // External field name, e.g. "currentPrice"
	Direction string // "asc" or "desc", guaranteed by the schema
}

// OrderCryptosInput is the GET /cryptos/order query. Orders preserves the
// order in which fields appeared in the query string.
type OrderCryptosInput struct {
	Orders []OrderField
	Offset int
	Limit  int
}

// allowed key sets per schema (strict mode)
var (
	createUserKeys    = keySet("name", "email", "password", "role")
	updateUserKeys    = keySet("name", "email", "role")
	filterUsersKeys   = keySet("name", "email", "role", "offset", "limit")
	filterCryptosKeys = keySet("id", "name", "offset", "limit")
	orderCryptosKeys  = keySet("id", "name", "currentPrice", "marketCap",
		"percentPriceChange24h", "percentPriceChange7D", "ath", "atl", "offset", "limit")
)

func keySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
