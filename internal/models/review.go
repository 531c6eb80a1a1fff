package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Review struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Email   string             `json:"email" bson:"email"`
	Details string             `json:"details" bson:"details"`
	Rating  float64            `json:"rating" bson:"rating"`
}

type ReviewRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"omitempty,email"`
	Details string  `json:"details" binding:"required"`
	Rating  float64 `json:"rating" binding:"gte=0,lte=5"`
}

func (r *ReviewRequest) ToReview() *Review {
	return &Review{Name: r.Name, Email: r.Email, Details: r.Details, Rating: r.Rating}
}
