// Package domain contains the core business entities of the food delivery
// service: users, restaurants, and the menus embedded in restaurants. It is
// independent of any storage technology or delivery mechanism.
package domain
