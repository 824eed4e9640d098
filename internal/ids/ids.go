// Package ids generates and checks the opaque identifiers used for users and posts.
//
// Identifiers are 24 character hex object ids. They are produced in the
// application for every store, so posts keep the same wire format whether they
// live in MongoDB, Postgres or memory, and they sort in creation order.
package ids

import "go.mongodb.org/mongo-driver/bson/primitive"

func New() string { return primitive.NewObjectID().Hex() }

// Valid reports whether s is a well formed identifier.
func Valid(s string) bool { return primitive.IsValidObjectID(s) }
