// Package main Outfit Picker API
//
//	@title			Outfit Picker API
//	@version		1.0
//	@description	Upload clothing photos and assemble random outfits with a total price.
//
//	@license.name	MIT
//
//	@host			localhost:8080
//	@BasePath		/api/v1
//
//	@tag.name			Wardrobe
//	@tag.description	Items, random picks and outfits
package main
