package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is one menu item placed in a user's cart, with the price at the time it was added.
type CartItem struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	MenuID string             `json:"menuId" bson:"menuId"`
	Email  string             `json:"email" bson:"email"`
	Name   string             `json:"name" bson:"name"`
	Image  string             `json:"image" bson:"image"`
	Price  float64            `json:"price" bson:"price"`
}

type CartItemRequest struct {
	MenuID string  `json:"menuId" binding:"required"`
	Email  string  `json:"email" binding:"required,email"`
	Name   string  `json:"name"`
	Image  string  `json:"image"`
	Price  float64 `json:"price" binding:"gte=0"`
}

func (r *CartItemRequest) ToCartItem() *CartItem {
	return &CartItem{MenuID: r.MenuID, Email: r.Email, Name: r.Name, Image: r.Image, Price: r.Price}
}
