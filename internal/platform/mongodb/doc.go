// Package mongodb provides MongoDB implementations of the persistence
// interfaces defined in internal/store. It is the default backend: users and
// restaurants are documents in the "users" and "restaurants" collections, and
// each restaurant embeds its menu as an array of subdocuments keyed by _id.
package mongodb
