package util

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const identifierLength = 24

var ErrInvalidIdentifier = errors.New("invalid identifier format")

// ParseIdentifier принимает ровно 24 шестнадцатеричных символа в любом регистре
func ParseIdentifier(raw string) (primitive.ObjectID, error) {
	if len(raw) != identifierLength {
		return primitive.NilObjectID, ErrInvalidIdentifier
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidIdentifier
	}

	return id, nil
}

// NewIdentifier генерирует новый идентификатор для места или отзыва
func NewIdentifier() primitive.ObjectID {
	return primitive.NewObjectID()
}

// NewReviewCode возвращает человекочитаемый код отзыва вида rev_1a2b3c
func NewReviewCode() string {
	hex := NewIdentifier().Hex()
	return "rev_" + hex[len(hex)-6:]
}
