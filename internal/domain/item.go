package domain

type Category string

const (
	CategoryMenu  Category = "Menu"
	CategorySpice Category = "Spice"
	CategorySnack Category = "Snack"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMenu, CategorySpice, CategorySnack:
		return true
	}
	return false
}

// Item is one catalog entry. Stock is the single source of truth for
// available inventory and never goes negative after a committed operation.
type Item struct {
	ID       uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string   `json:"name" gorm:"not null"`
	Category Category `json:"category" gorm:"type:varchar(16);not null"`
	Price    float64  `json:"price" gorm:"not null"`
	Stock    int      `json:"stock" gorm:"not null;default:0"`
	Code     Code     `json:"code" gorm:"type:varchar(24);index"`
}
