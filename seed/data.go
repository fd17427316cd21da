package seed

import "reisegruppen/models"

const unsplash = "https://images.unsplash.com/photo-"

func img(id string) string {
	return unsplash + id + "?auto=format&fit=crop&w=800&q=80"
}

func gallery(pairs ...string) []models.Image {
	images := make([]models.Image, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		images = append(images, models.Image{URL: img(pairs[i]), Title: pairs[i+1], IsMain: i == 0})
	}
	return images
}

var sampleDestinations = []models.Destination{
	{
		Name: "Toskana", Country: "Italien", City: "Florenz",
		Description:       "Malerische Landschaft mit Weinbergen und historischen Städten",
		Images:            []string{img("1464983953574-0892a716854b")},
		AvgPricePerPerson: 800,
		Tags:              []string{"culture", "relaxation", "romantic"},
		Coordinates:       models.Coordinates{Lat: 43.7711, Lng: 11.2486},
	},
	{
		Name: "Tromsø", Country: "Norwegen", City: "Tromsø",
		Description:       "Nordlichter und arktische Abenteuer",
		Images:            []string{img("1506744038136-46273834b3fb")},
		AvgPricePerPerson: 1200,
		Tags:              []string{"adventure", "mountains"},
		Coordinates:       models.Coordinates{Lat: 69.6492, Lng: 18.9553},
	},
	{
		Name: "Kykladen", Country: "Griechenland", City: "Santorini",
		Description:       "Traumhafte griechische Inseln mit weißen Häusern",
		Images:            []string{img("1507525428034-b723cf961d3e")},
		AvgPricePerPerson: 900,
		Tags:              []string{"beach", "relaxation", "romantic"},
		Coordinates:       models.Coordinates{Lat: 36.3932, Lng: 25.4615},
	},
	{
		Name: "Barcelona", Country: "Spanien", City: "Barcelona",
		Description:       "Lebendige Metropole mit Kultur und Kulinarik",
		Images:            []string{img("1505761671935-60b3a7427bad")},
		AvgPricePerPerson: 600,
		Tags:              []string{"city", "culture"},
		Coordinates:       models.Coordinates{Lat: 41.3851, Lng: 2.1734},
	},
	{
		Name: "Tirol", Country: "Österreich", City: "Innsbruck",
		Description:       "Bergwelt und Wanderparadies",
		Images:            []string{img("1469474968028-56623f02e42e")},
		AvgPricePerPerson: 700,
		Tags:              []string{"mountains", "adventure"},
		Coordinates:       models.Coordinates{Lat: 47.2692, Lng: 11.4041},
	},
}

// offer fills the fields every seeded offer shares.
func offer(o models.TravelOffer, pricePerNight float64) models.TravelOffer {
	o.PricePerNight = &pricePerNight
	if o.CheckInTime == "" {
		o.CheckInTime = models.DefaultCheckInTime
	}
	if o.CheckOutTime == "" {
		o.CheckOutTime = models.DefaultCheckOutTime
	}
	o.Available = true
	o.AvailabilityPeriods = []map[string]any{}
	return o
}

func travelOffers() []models.TravelOffer {
	return []models.TravelOffer{
		offer(models.TravelOffer{
			Title:       "Traumhafte Toskana Tour",
			Description: "Entdecken Sie die malerische Landschaft der Toskana, besuchen Sie historische Städte und genießen Sie die italienische Küche.",
			Destination: "Toskana", Country: "Italien", City: "Florenz", Category: "Hotel",
			Images: gallery(
				"1506744038136-46273834b3fb", "Hotel mit Pool in der Toskana",
				"1464983953574-0892a716854b", "Weinberge Toskana",
			),
			PricePerPerson: 980, MinPersons: 2, MaxPersons: 8, Stars: 4,
			Amenities:          []string{"WLAN", "Pool", "Restaurant", "Halbpension", "Parkplatz"},
			Tags:               []string{"culture", "relaxation", "romantic"},
			Location:           models.Location{Latitude: 43.7711, Longitude: 11.2486, Address: "Via dei Vini 12, 50125 Florenz, Italien"},
			CancellationPolicy: "moderate",
			Rating:             models.Rating{Average: 4.8, Count: 124},
		}, 140),
		offer(models.TravelOffer{
			Title:       "Nordlichter in Norwegen",
			Description: "Erleben Sie das magische Naturschauspiel der Nordlichter und entdecken Sie die atemberaubende norwegische Landschaft.",
			Destination: "Tromsø", Country: "Norwegen", City: "Tromsø", Category: "Hotel",
			Images:         gallery("1519817650390-64a93db511ed", "Hotel in Tromsø mit Nordlichtern"),
			PricePerPerson: 1450, MinPersons: 2, MaxPersons: 6, Stars: 4,
			Amenities:          []string{"WLAN", "Spa", "Restaurant", "Vollpension", "Fitness"},
			Tags:               []string{"adventure", "mountains"},
			Location:           models.Location{Latitude: 69.6492, Longitude: 18.9553, Address: "Arctic Hotel, Tromsø, Norwegen"},
			CancellationPolicy: "moderate",
			Rating:             models.Rating{Average: 4.9, Count: 87},
		}, 290),
		offer(models.TravelOffer{
			Title:       "Griechische Inselträume",
			Description: "Entspannen Sie auf den schönsten Inseln Griechenlands, besuchen Sie antike Stätten und genießen Sie das mediterrane Flair.",
			Destination: "Kykladen", Country: "Griechenland", City: "Santorini", Category: "Resort",
			Images:         gallery("1507525428034-b723cf961d3e", "Santorini Resort"),
			PricePerPerson: 1680, MinPersons: 2, MaxPersons: 10, Stars: 5,
			Amenities:          []string{"WLAN", "Pool", "Strand", "All-Inclusive", "Spa"},
			Tags:               []string{"beach", "relaxation", "romantic"},
			Location:           models.Location{Latitude: 36.3932, Longitude: 25.4615, Address: "Santorini Resort, Kykladen, Griechenland"},
			CancellationPolicy: "free",
			Rating:             models.Rating{Average: 4.7, Count: 203},
		}, 168),
		offer(models.TravelOffer{
			Title:       "Spanische Tapas Tour",
			Description: "Entdecken Sie die kulinarische Vielfalt Spaniens und erleben Sie die lebendige Kultur der spanischen Metropolen.",
			Destination: "Barcelona", Country: "Spanien", City: "Barcelona", Category: "Hotel",
			Images:         gallery("1505761671935-60b3a7427bad", "Hotel in Barcelona"),
			PricePerPerson: 520, MinPersons: 2, MaxPersons: 8, Stars: 4,
			Amenities:          []string{"WLAN", "Restaurant", "Bar", "Halbpension", "Klimaanlage"},
			Tags:               []string{"city", "culture"},
			Location:           models.Location{Latitude: 41.3851, Longitude: 2.1734, Address: "Hotel Barcelona Centro, Barcelona, Spanien"},
			CancellationPolicy: "moderate",
			Rating:             models.Rating{Average: 4.6, Count: 156},
		}, 130),
		offer(models.TravelOffer{
			Title:       "Alpen Wanderparadies",
			Description: "Wandern Sie durch die malerische Bergwelt Tirols und genießen Sie die frische Bergluft und traditionelle Hüttengastronomie.",
			Destination: "Tirol", Country: "Österreich", City: "Innsbruck", Category: "Pension",
			Images:         gallery("1469474968028-56623f02e42e", "Pension in den Alpen"),
			PricePerPerson: 540, MinPersons: 2, MaxPersons: 12, Stars: 3,
			Amenities:          []string{"WLAN", "Restaurant", "Halbpension", "Balkon", "Parkplatz"},
			Tags:               []string{"mountains", "adventure"},
			Location:           models.Location{Latitude: 47.2692, Longitude: 11.4041, Address: "Alpenpension Tirol, Innsbruck, Österreich"},
			CancellationPolicy: "moderate",
			Rating:             models.Rating{Average: 4.8, Count: 98},
		}, 90),
		offer(models.TravelOffer{
			Title:       "Mittelmeer Kreuzfahrt",
			Description: "Entspannte Kreuzfahrt durch das Mittelmeer mit Stopps in den schönsten Häfen Europas.",
			Destination: "Mittelmeer", Country: "International", City: "Verschiedene Häfen", Category: "Kreuzfahrt",
			Images:         gallery("1502086223501-7ea6ecd79368", "Luxus Kreuzfahrtschiff"),
			PricePerPerson: 1200, MinPersons: 1, MaxPersons: 20, Stars: 5,
			Amenities:          []string{"WLAN", "Pool", "Spa", "All-Inclusive", "Restaurant", "Bar", "Fitness"},
			Tags:               []string{"luxury", "relaxation", "beach"},
			Location:           models.Location{Latitude: 42.0, Longitude: 12.0, Address: "Verschiedene Mittelmeerhäfen"},
			CancellationPolicy: "moderate",
			Rating:             models.Rating{Average: 4.9, Count: 312},
		}, 150),
		offer(models.TravelOffer{
			Title:       "Schwarzwald Wellness",
			Description: "Entspannung pur im Schwarzwald mit Wellness, Wandern und regionaler Küche.",
			Destination: "Schwarzwald", Country: "Deutschland", City: "Baden-Baden", Category: "Wellness Hotel",
			Images:         gallery("1519125323398-675f0ddb6308", "Wellness Hotel Schwarzwald"),
			PricePerPerson: 420, MinPersons: 2, MaxPersons: 6, Stars: 4,
			Amenities:          []string{"WLAN", "Spa", "Pool", "Restaurant", "Halbpension", "Fitness"},
			Tags:               []string{"relaxation", "mountains", "family"},
			Location:           models.Location{Latitude: 48.7606, Longitude: 8.2401, Address: "Wellness Resort Schwarzwald, Baden-Baden"},
			CancellationPolicy: "free",
			Rating:             models.Rating{Average: 4.5, Count: 89},
		}, 120),
		offer(models.TravelOffer{
			Title:       "Städtetrip London",
			Description: "Entdecken Sie die britische Hauptstadt mit ihren Sehenswürdigkeiten, Museen und dem typischen Flair.",
			Destination: "London", Country: "Großbritannien", City: "London", Category: "Hotel",
			Images:         gallery("1465101046530-73398c7f28ca", "London City Hotel"),
			PricePerPerson: 680, MinPersons: 1, MaxPersons: 8, Stars: 4,
			Amenities:          []string{"WLAN", "Restaurant", "Bar", "Nur Frühstück", "TV"},
			Tags:               []string{"city", "culture", "adventure"},
			Location:           models.Location{Latitude: 51.5074, Longitude: -0.1278, Address: "Central London Hotel, London"},
			CancellationPolicy: "moderate",
			Rating:             models.Rating{Average: 4.4, Count: 267},
		}, 95),
	}
}

type account struct {
	email, password, name, role string
	profile                     models.Profile
}

var accounts = []account{
	{"admin@tui.com", "admin123", "TUI Admin", "admin", models.Profile{FirstName: "TUI", LastName: "Admin"}},
	{"demo@tui.com", "demo123", "Demo User", "user", models.Profile{FirstName: "Demo", LastName: "User"}},
}
