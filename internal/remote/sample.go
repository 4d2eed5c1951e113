package remote

import "github.com/pkordes/chronotours/internal/domain"

// SampleTimePeriods returns the catalog's time periods.
func SampleTimePeriods() []domain.TimePeriod {
	return []domain.TimePeriod{
		{
			ID:          "1",
			Name:        "Ancient Egypt",
			StartYear:   -3100,
			EndYear:     -332,
			Description: "Experience the majesty of Ancient Egypt from the Early Dynastic Period through the Late Period. Witness the construction of the pyramids, explore the temples of Luxor, and cruise the Nile during the height of pharaonic power.",
			CoverImage:  "https://example.com/ancient-egypt.jpg",
			GalleryImages: []string{
				"https://example.com/egypt1.jpg",
				"https://example.com/egypt2.jpg",
			},
			Featured: true,
		},
		{
			ID:          "2",
			Name:        "Renaissance Italy",
			StartYear:   1400,
			EndYear:     1600,
			Description: "Immerse yourself in the artistic and cultural rebirth of Europe. Meet the great masters like Leonardo da Vinci and Michelangelo, witness the creation of timeless works of art, and experience the intellectual revolution that shaped the modern world.",
			CoverImage:  "https://example.com/renaissance.jpg",
			GalleryImages: []string{
				"https://example.com/renaissance1.jpg",
				"https://example.com/renaissance2.jpg",
			},
			Featured: true,
		},
		{
			ID:          "3",
			Name:        "Age of Exploration",
			StartYear:   1400,
			EndYear:     1700,
			Description: "Join the great explorers as they venture into the unknown, mapping new continents and establishing global trade routes. Experience life aboard a ship with Columbus, Magellan, or Cook as they make world-changing discoveries.",
			CoverImage:  "https://example.com/exploration.jpg",
			GalleryImages: []string{
				"https://example.com/exploration1.jpg",
				"https://example.com/exploration2.jpg",
			},
		},
		{
			ID:          "4",
			Name:        "Industrial Revolution",
			StartYear:   1760,
			EndYear:     1840,
			Description: "Witness the transformation of society through mechanization and innovation. Experience the birth of modern industry, the rise of factories, and the social changes that reshaped human civilization.",
			CoverImage:  "https://example.com/industrial.jpg",
			GalleryImages: []string{
				"https://example.com/industrial1.jpg",
				"https://example.com/industrial2.jpg",
			},
		},
		{
			ID:          "5",
			Name:        "Roaring Twenties",
			StartYear:   1920,
			EndYear:     1929,
			Description: "Experience the jazz age in all its glory. Dance in speakeasies during Prohibition, witness the birth of modern celebrity culture, and enjoy the economic prosperity and cultural dynamism of this iconic decade.",
			CoverImage:  "https://example.com/twenties.jpg",
			GalleryImages: []string{
				"https://example.com/twenties1.jpg",
				"https://example.com/twenties2.jpg",
			},
			Featured: true,
		},
	}
}

// SampleTours returns the catalog's tours.
func SampleTours() []domain.Tour {
	return []domain.Tour{
		{
			ID:           "101",
			Title:        "Pyramid Construction Spectacle",
			TimePeriodID: "1",
			Description:  "Witness the construction of the Great Pyramid of Giza in real-time. This exclusive tour allows you to observe the ancient engineering marvel as it's being built, with special access to construction areas normally off-limits to visitors.",
			Itinerary: []string{
				"Day 1: Arrival in Ancient Memphis, orientation and period clothing fitting",
				"Day 2: Journey to Giza plateau, observe quarry operations",
				"Day 3: Exclusive access to construction site with expert guide",
				"Day 4: Meet with ancient engineers (translator provided)",
				"Day 5: Nile cruise and return preparation",
			},
			Duration:     5,
			Price:        5999,
			MaxGroupSize: 8,
			Highlights: []string{
				"Witness thousands of workers moving massive stone blocks",
				"Learn ancient construction techniques from period engineers",
				"Exclusive evening access to construction site at sunset",
				"Authentic period meals and accommodations",
			},
			IncludesTimeMachine: true,
			Images: []string{
				"https://example.com/pyramid1.jpg",
				"https://example.com/pyramid2.jpg",
			},
			Rating:      4.9,
			ReviewCount: 128,
		},
		{
			ID:           "102",
			Title:        "Da Vinci's Workshop Experience",
			TimePeriodID: "2",
			Description:  "Spend time in Leonardo da Vinci's workshop during his most productive period. Observe the master as he works on multiple projects, from paintings to inventions, and experience the creative atmosphere of Renaissance Florence.",
			Itinerary: []string{
				"Day 1: Arrival in 15th century Florence, period orientation",
				"Day 2: Introduction to da Vinci's workshop and Renaissance art context",
				"Day 3: Full day observing painting techniques",
				"Day 4: Engineering and invention day with notebook session",
				"Day 5: Florence cultural experiences and return journey",
			},
			Duration:           5,
			Price:              6499,
			DiscountPercentage: 10,
			MaxGroupSize:       6,
			Highlights: []string{
				"Watch The Last Supper or Mona Lisa being painted",
				"See da Vinci's flying machine designs in development",
				"Authentic Renaissance meals and accommodation",
				"Take home a replica of da Vinci's notebook",
			},
			IncludesTimeMachine: true,
			Images: []string{
				"https://example.com/davinci1.jpg",
				"https://example.com/davinci2.jpg",
			},
			Rating:      5.0,
			ReviewCount: 95,
		},
		{
			ID:           "103",
			Title:        "Jazz Age Nightlife Tour",
			TimePeriodID: "5",
			Description:  "Experience the vibrant nightlife of 1920s New York, Chicago, and New Orleans. Visit legendary speakeasies, dance to original jazz performances, and immerse yourself in the fashion and culture of the Roaring Twenties.",
			Itinerary: []string{
				"Day 1: Arrival and 1920s fashion fitting in New York",
				"Day 2: Harlem Renaissance exploration and evening at the Cotton Club",
				"Day 3: Travel to Chicago for Al Capone era speakeasies",
				"Day 4: New Orleans jazz origins experience",
				"Day 5: Final celebration and return journey",
			},
			Duration:           5,
			Price:              3999,
			DiscountPercentage: 15,
			MaxGroupSize:       12,
			Highlights: []string{
				"Hear Louis Armstrong and Duke Ellington perform live",
				"Learn authentic 1920s dance moves from period instructors",
				"Access to exclusive speakeasies with correct passwords",
				"Prohibition-era cocktail mixing class",
			},
			IncludesTimeMachine: true,
			Images: []string{
				"https://example.com/jazz1.jpg",
				"https://example.com/jazz2.jpg",
			},
			Rating:      4.8,
			ReviewCount: 211,
		},
	}
}
