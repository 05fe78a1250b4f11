// internal/content/seed.go
//
// Static seed records.
//
// The data service falls back to these whenever the backing store has no
// value for a key.  Every helper returns a fresh copy so callers may mutate
// the result without touching the package state.
package content

const (
	siteName = "SM Skills"
	estd     = "2024"
)

// DefaultPageID is served when Page is asked for an unknown key.
const DefaultPageID = "default"

// SeedSettings returns the default Settings record.
func SeedSettings() Settings {
	return Settings{
		SiteName:        siteName,
		Tagline:         "TRAINING INSTITUTE",
		Phone:           "+1 (555) 123-4567",
		Email:           "info@smskills.edu",
		AdmissionsEmail: "admissions@smskills.edu",
		Address:         "123 Skills Avenue, Tech Park, New York, NY 10012",
		Socials: Socials{
			"facebook":  "#",
			"twitter":   "#",
			"instagram": "#",
			"linkedin":  "#",
		},
	}
}

// SeedCourses returns the default programme list.
func SeedCourses() []Course {
	return []Course{
		{
			ID:          1,
			Name:        "Computer Science Engineering",
			Duration:    "4 Years",
			Description: "A comprehensive program covering algorithms, data structures, and modern software development.",
			Mode:        ModeOffline,
			Published:   true,
			Image:       "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?auto=format&fit=crop&w=1000&q=80",
		},
		{
			ID:          2,
			Name:        "Business Administration (MBA)",
			Duration:    "2 Years",
			Description: "Master leadership, finance, and strategic management in this intensive 2-year program.",
			Mode:        ModeOffline,
			Published:   true,
			Image:       "https://images.unsplash.com/photo-1434030216411-0b793f4b4173?auto=format&fit=crop&w=1000&q=80",
		},
		{
			ID:          3,
			Name:        "Graphic Design Diploma",
			Duration:    "1 Year",
			Description: "Learn visual communication, typography, and branding with industry-standard tools.",
			Mode:        ModeOffline,
			Published:   true,
			Image:       "https://images.unsplash.com/photo-1626785774573-4b799315345d?auto=format&fit=crop&w=1000&q=80",
		},
		{
			ID:          4,
			Name:        "Data Science Bootcamp",
			Duration:    "6 Months",
			Description: "Intensive training in Python, Machine Learning, and statistical analysis.",
			Mode:        ModeOffline,
			Published:   true,
			Image:       "https://images.unsplash.com/photo-1518186285589-2f7649de83e0?auto=format&fit=crop&w=1374&q=80",
		},
	}
}

// SeedNotices returns the default notice board.  Ids start at 1 so a zero
// id always means "new record".
func SeedNotices() []Notice {
	return []Notice{
		{ID: 1, Date: "2024-03-25", Tag: "NEW", Title: "Admissions Open for Summer 2024", Description: "Join our inaugural batch.  Applications are now being accepted.", Active: true},
		{ID: 2, Date: "2024-03-20", Tag: "NEW", Title: "Industry Partnership Announcement", Description: "SM Skills partners with leading tech firms for curriculum development.", Active: true},
		{ID: 3, Date: "2024-03-15", Title: "Scholarship Test", Description: "Register for the upcoming scholarship test to avail up to 50% fee waiver.", Active: true},
		{ID: 4, Date: "2024-03-10", Title: "Free Webinar: Future of Tech", Description: "Join us for a free webinar on emerging technologies this weekend.", Active: true},
		{ID: 5, Date: "2024-03-05", Title: "Campus Visit Day", Description: "Open house for prospective students and parents this Saturday.", Active: true},
	}
}

// SeedPages returns the default page table.
func SeedPages() map[string]Page {
	return map[string]Page{
		"home": {
			ID:       "home",
			Title:    "Master New Skills",
			Subtitle: "Build Your Future",
			Sections: map[string]any{
				"heroDesc":     siteName + " Training Institute provides modern, industry-relevant education designed to launch your career.  Join us in " + estd + " to discover your true potential.",
				"welcomeTitle": "Welcome to " + siteName,
				"showReviews":  true,
				"showStats":    true,
			},
			SEO: SEO{Title: "Home | SM Skills", Description: "Official website of SM Skills Institute."},
		},
		"about": {
			ID:       "about",
			Title:    "About Us",
			Subtitle: "Discover our vision and mission",
			Sections: map[string]any{
				"mainTitle": "A New Era of Excellence",
				"mission":   "To empower students with the cutting-edge skills and values necessary to thrive in a dynamic global economy.",
				"vision":    "To be a premier destination for skill development and innovation.",
			},
			SEO: SEO{Title: "About | SM Skills", Description: "Learn about our history and values."},
		},
		"courses": {
			ID:       "courses",
			Title:    "Our Programs",
			Subtitle: "Explore our diverse academic offerings",
			Sections: map[string]any{},
			SEO:      SEO{Title: "Courses | SM Skills", Description: "Professional training programs."},
		},
	}
}

// DefaultPage is the fallback record for unknown page ids.
func DefaultPage() Page {
	return Page{
		ID:       DefaultPageID,
		Title:    siteName,
		Sections: map[string]any{},
		SEO:      SEO{Title: siteName + " | Training Institute", Description: "Official website of SM Skills Institute."},
	}
}

// SeedGallery returns the default gallery.
func SeedGallery() []GalleryImage {
	return []GalleryImage{
		{ID: 1, Category: "Classroom", Src: "https://images.unsplash.com/photo-1509062522246-3755977927d7?auto=format&fit=crop&w=1000&q=80", Alt: "Modern Classroom Session"},
		{ID: 2, Category: "Practical", Src: "https://images.unsplash.com/photo-1581093458791-9f3c3900df4b?auto=format&fit=crop&w=1000&q=80", Alt: "Engineering Lab Work"},
		{ID: 3, Category: "Events", Src: "https://images.unsplash.com/photo-1544531696-297eb9009f78?auto=format&fit=crop&w=1000&q=80", Alt: "Annual Sports Meet"},
		{ID: 4, Category: "Placements", Src: "https://images.unsplash.com/photo-1523240795612-9a054b0db644?auto=format&fit=crop&w=1000&q=80", Alt: "Graduation Day Ceremony"},
		{ID: 5, Category: "Classroom", Src: "https://images.unsplash.com/photo-1501290836517-b223502fe7ae?auto=format&fit=crop&w=1000&q=80", Alt: "Library Study Area"},
		{ID: 6, Category: "Practical", Src: "https://images.unsplash.com/photo-1532094349884-543bc11b234d?auto=format&fit=crop&w=1000&q=80", Alt: "Research & Development"},
	}
}

// SeedAccount is a default console account before hashing.
type SeedAccount struct {
	ID       string
	Username string
	Password string
	Role     string
}

// SeedAccounts are the development accounts used when the configuration
// declares no users.  Passwords are hashed at startup; they never reach a
// store.
func SeedAccounts() []SeedAccount {
	return []SeedAccount{
		{ID: "1", Username: "admin", Password: "admin", Role: RoleSuperAdmin},
		{ID: "2", Username: "editor", Password: "editor", Role: RoleContentManager},
	}
}
