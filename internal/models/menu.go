package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Category string             `json:"category" bson:"category"`
	Price    float64            `json:"price" bson:"price"`
	Recipe   string             `json:"recipe" bson:"recipe"`
	Image    string             `json:"image" bson:"image"`
}

type MenuItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
}

func (r *MenuItemRequest) ToMenuItem() *MenuItem {
	return &MenuItem{
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Recipe:   r.Recipe,
		Image:    r.Image,
	}
}

// MenuItemPatch carries only the fields a partial update replaces.
type MenuItemPatch struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Recipe   *string  `json:"recipe"`
	Image    *string  `json:"image"`
}

// Fields returns the stored field names and values present in the patch.
func (p *MenuItemPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Recipe != nil {
		fields["recipe"] = *p.Recipe
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	return fields
}

func (p *MenuItemPatch) Validate() error {
	if len(p.Fields()) == 0 {
		return ValidationError{Field: "body", Message: "at least one field is required"}
	}
	if p.Name != nil && *p.Name == "" {
		return ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if p.Price != nil && *p.Price <= 0 {
		return ValidationError{Field: "price", Message: "price must be greater than 0"}
	}
	return nil
}
