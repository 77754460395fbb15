package db_models

// Feedback is one accepted submission. The same struct is the JSON file entry, the
// Mongo document (minus _id, which is never decoded) and the SQL row.
type Feedback struct {
	ID        int64  `json:"id" bson:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" bson:"name" gorm:"type:text;not null"`
	Email     string `json:"email" bson:"email" gorm:"type:text;not null"`
	Message   string `json:"message" bson:"message" gorm:"type:text;not null"`
	Timestamp string `json:"timestamp" bson:"timestamp" gorm:"type:varchar(32);not null"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

// NewFeedback is a validated submission that has not been assigned an id yet.
type NewFeedback struct {
	Name    string
	Email   string
	Message string
}
