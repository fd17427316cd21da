package offers

import (
	"strconv"

	"reisegruppen/models"
	"reisegruppen/utils"
)

// SanitizeImageURLs keeps the candidates that are absolute http(s) URLs, in
// order, and drops the rest without error. Survivors are titled "Bild 1".."Bild N"
// and only the first is marked as the main image.
func SanitizeImageURLs(candidates []string) []models.Image {
	images := []models.Image{}
	for _, c := range candidates {
		if !utils.IsHTTPURL(c) {
			continue
		}
		n := len(images) + 1
		images = append(images, models.Image{
			URL:    c,
			Title:  "Bild " + strconv.Itoa(n),
			IsMain: n == 1,
		})
	}
	return images
}
