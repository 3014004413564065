package models

// Cafe represents a single café listing in the directory.
type Cafe struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"type:varchar(250);uniqueIndex;not null"`
	MapURL   string `json:"map_url" gorm:"type:varchar(500);not null"`
	ImgURL   string `json:"img_url" gorm:"type:varchar(500);not null"`
	Location string `json:"location" gorm:"type:varchar(250);not null"`
	// Seats is free text on purpose: listings use ranges like "20-30".
	Seats        string `json:"seats" gorm:"type:varchar(250);not null"`
	HasToilet    bool   `json:"has_toilet" gorm:"not null"`
	HasWifi      bool   `json:"has_wifi" gorm:"not null"`
	HasSockets   bool   `json:"has_sockets" gorm:"not null"`
	CanTakeCalls bool   `json:"can_take_calls" gorm:"not null"`
	CoffeePrice  string `json:"coffee_price" gorm:"type:varchar(250)"`
}

// TableName pins the table to "cafes"; GORM's pluralizer would otherwise
// derive "caves" from Cafe.
func (Cafe) TableName() string {
	return "cafes"
}
