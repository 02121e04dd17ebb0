package core

import (
	"io"
	"log/slog"

	"github.com/JonMunkholm/ddport/internal/ddp"
	"github.com/JonMunkholm/ddport/internal/extract"
)

var (
	testComments = extract.MustCompile(extract.Pattern{
		Member:  "Comments.txt",
		Fields:  []extract.Field{{Label: "Date"}, {Label: "Comment"}},
		Columns: []string{"Time and date", "Comment"},
	})
	testBrowsing = extract.MustCompile(extract.Pattern{
		Member:  "Browsing History.txt",
		Fields:  []extract.Field{{Label: "Date"}, {Label: "Link"}},
		Columns: []string{"Time and date", "Video watched"},
		Shape:   extract.ShapeIndexed,
	})
	testSearches = extract.MustCompile(extract.Pattern{
		Member:  "Searches.txt",
		Fields:  []extract.Field{{Label: "Date"}, {Label: "Search Term"}},
		Columns: []string{"Time and date", "Search term"},
	})
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPlatform() Platform {
	return Platform{
		Key:        "testplatform",
		Name:       "TestPlatform",
		Extensions: DefaultExtensions,
		Manifests: []ddp.Manifest{
			ddp.NewManifest("json_txt", ddp.FiletypeJSON, ddp.LanguageEN,
				"Comments.txt", "Browsing History.txt", "Searches.txt", "Follower.txt"),
		},
		Tables: []DisplaySpec{
			{
				Name:        "test_searches",
				Title:       Same("Search terms"),
				Description: Same("What you searched for"),
				Matcher:     testSearches,
				Visualizations: []Visualization{
					{Type: VisualizationWordCloud, Title: Same(""), TextColumn: "Search term"},
				},
			},
			{
				Name:        "test_browsing",
				Title:       Same("Watch history"),
				Description: Same("What you watched"),
				Matcher:     testBrowsing,
			},
			{
				Name:        "test_comments",
				Title:       Same("Comments"),
				Description: Same("What you commented"),
				Matcher:     testComments,
			},
		},
		Texts: PageTexts{
			SubmitFileHeader:  Same("Select your file"),
			ReviewHeader:      Same("Your data"),
			ReviewDescription: Same("Below is a selection of your data."),
			RetryHeader:       Same("Try again"),
		},
	}
}

// constValidator reports the given status regardless of the archive.
func constValidator(code int) ValidateFunc {
	return func([]ddp.Manifest, string) ddp.ValidationResult {
		return ddp.ValidationResult{StatusCode: code}
	}
}

const commentsTxt = "Date: 2024-01-02 10:11:12\nComment: hello\n\nDate: 2024-01-03 09:00:00\nComment: again\n"
