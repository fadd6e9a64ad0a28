package models

import "time"

type Rating struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerName string    `gorm:"column:cliente_nome;type:varchar(255);not null" json:"customer_name"`
	Score        int       `gorm:"column:nota;not null" json:"score"`
	RatedAt      time.Time `gorm:"column:data_hora;not null" json:"rated_at"`
}

func (Rating) TableName() string { return "avaliacoes" }
