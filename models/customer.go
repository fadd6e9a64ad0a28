package models

// Customer is a registered client of the pizzeria. Orders keep their own
// copy of the name, so deleting a customer leaves order history intact.
type Customer struct {
	ID      string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name    string  `gorm:"column:nome;type:varchar(255);not null;index" json:"name"`
	Phone   string  `gorm:"column:telefone;type:varchar(50);not null" json:"phone"`
	Email   *string `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Address *string `gorm:"column:endereco;type:text" json:"address,omitempty"`
}

func (Customer) TableName() string { return "customers" }
