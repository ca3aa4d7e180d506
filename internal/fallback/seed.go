package fallback

import "convertly/internal/api"

// seedPosts is the built-in blog content used when neither the backend nor
// the snapshot store has anything to show. Matches the starter content the
// web UI ships with.
func seedPosts() []api.BlogPost {
	return []api.BlogPost{
		{
			ID:          "1",
			Title:       "Complete Guide to PDF Conversion",
			Excerpt:     "Learn everything you need to know about converting PDFs to and from various formats.",
			Content:     "Full content here...",
			Author:      "Sarah Johnson",
			PublishDate: "2024-01-15",
			Category:    "Tutorials",
			Tags:        []string{"PDF", "Conversion", "Documents"},
			Featured:    true,
			Published:   true,
		},
		{
			ID:          "2",
			Title:       "Image Format Wars: JPEG vs PNG vs WEBP",
			Excerpt:     "Dive deep into the world of image formats and discover which format is best.",
			Content:     "Full content here...",
			Author:      "Mike Chen",
			PublishDate: "2024-01-10",
			Category:    "Technology",
			Tags:        []string{"Images", "Web", "Performance"},
			Featured:    true,
			Published:   true,
		},
	}
}

// defaultSettings mirrors the backend's initial conversion settings.
func defaultSettings() api.Settings {
	return api.Settings{
		"max_file_size":      "100",
		"allowed_file_types": "PDF,DOCX,JPG,PNG,MP4,MP3,WAV,FLAC",
		"image_quality":      "95",
		"audio_bitrate":      "192",
	}
}
