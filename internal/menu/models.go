package menu

// MenuItem is one sellable product line on the coffee-shop menu.
// ID is assigned by the store on creation and never changes afterwards.
type MenuItem struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"menuName" db:"menu_name" validate:"required"`
	Price     float64 `json:"menuPrice" db:"menu_price" validate:"gt=0"`
	Category  string  `json:"menuCategory" db:"menu_category" validate:"required"`
	Available bool    `json:"menuAvailable" db:"menu_available"`
}

// Field names as they appear on the wire and in document stores.
const (
	FieldName      = "menuName"
	FieldPrice     = "menuPrice"
	FieldCategory  = "menuCategory"
	FieldAvailable = "menuAvailable"
)

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name      *string  `json:"menuName,omitempty" validate:"omitnil,min=1"`
	Price     *float64 `json:"menuPrice,omitempty" validate:"omitnil,gt=0"`
	Category  *string  `json:"menuCategory,omitempty" validate:"omitnil,min=1"`
	Available *bool    `json:"menuAvailable,omitempty"`
}

// FullPatch returns a patch that sets every field of item.
func FullPatch(item MenuItem) Patch {
	return Patch{
		Name:      &item.Name,
		Price:     &item.Price,
		Category:  &item.Category,
		Available: &item.Available,
	}
}

// AvailabilityPatch returns a patch that only sets menuAvailable.
func AvailabilityPatch(available bool) Patch {
	return Patch{Available: &available}
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil && p.Available == nil
}

// Fields returns the submitted fields keyed by their wire names.
func (p Patch) Fields() map[string]interface{} {
	out := make(map[string]interface{}, 4)
	if p.Name != nil {
		out[FieldName] = *p.Name
	}
	if p.Price != nil {
		out[FieldPrice] = *p.Price
	}
	if p.Category != nil {
		out[FieldCategory] = *p.Category
	}
	if p.Available != nil {
		out[FieldAvailable] = *p.Available
	}
	return out
}

// Apply merges the submitted fields into item.
func (p Patch) Apply(item *MenuItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
}
