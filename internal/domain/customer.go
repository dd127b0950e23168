package domain

// Customer email uniqueness is enforced at the service layer through
// EmailTaken rather than a DB constraint; early databases were created
// without it and migrating them is out of scope.
type Customer struct {
	ID      uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null;index"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}
