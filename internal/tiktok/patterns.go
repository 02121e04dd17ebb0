// Package tiktok declares the TikTok data download package: its manifest,
// the line patterns of its text exports and the tables shown for review.
// Importing the package registers the platform with core.
package tiktok

import "github.com/JonMunkholm/ddport/internal/extract"

func fields(labels ...string) []extract.Field {
	out := make([]extract.Field, len(labels))
	for i, l := range labels {
		out[i] = extract.Field{Label: l}
	}
	return out
}

// Column labels are part of the review page contract and keep the export's
// inconsistent spelling.
var (
	BrowsingHistory = extract.Register(extract.Pattern{
		Member:  "Browsing History.txt",
		Fields:  fields("Date", "Link"),
		Columns: []string{"Time and date", "Video watched"},
		Shape:   extract.ShapeIndexed,
	})

	FavoriteHashtags = extract.Register(extract.Pattern{
		Member: "Favorite HashTags.txt",
		Fields: []extract.Field{
			{Label: "Date"},
			{Label: "HashTag Link", Separators: []string{"::", ":"}},
		},
		Columns: []string{"Time and date", "Hashtag url"},
	})

	Comments = extract.Register(extract.Pattern{
		Member:  "Comments.txt",
		Fields:  fields("Date", "Comment"),
		Columns: []string{"Time and date", "Comment"},
	})

	FavoriteVideos = extract.Register(extract.Pattern{
		Member:  "Favorite Videos.txt",
		Fields:  fields("Date", "Link"),
		Columns: []string{"Time and date", "Link"},
	})

	Follower = extract.Register(extract.Pattern{
		Member:  "Follower.txt",
		Fields:  fields("Date"),
		Columns: []string{"Date"},
	})

	LoginHistory = extract.Register(extract.Pattern{
		Member:  "Login History.txt",
		Fields:  fields("Date"),
		Columns: []string{"Date"},
	})

	Hashtag = extract.Register(extract.Pattern{
		Member:  "Hashtag.txt",
		Fields:  fields("Hashtag Name", "Hashtag Link"),
		Columns: []string{"Hashtag naam", "Hashtag url"},
	})

	LikeList = extract.Register(extract.Pattern{
		Member:  "Like List.txt",
		Fields:  fields("Date", "Link"),
		Columns: []string{"Time and date", "Link"},
	})

	Searches = extract.Register(extract.Pattern{
		Member:  "Searches.txt",
		Fields:  fields("Date", "Search Term"),
		Columns: []string{"Time and date", "Search term"},
	})

	Following = extract.Register(extract.Pattern{
		Member:  "Following.txt",
		Fields:  fields("Date", "Username"),
		Columns: []string{"Time and Date", "Username"},
	})

	ShareHistory = extract.Register(extract.Pattern{
		Member:  "Share History.txt",
		Fields:  fields("Date", "Shared Content", "Link", "Method"),
		Columns: []string{"Time and date", "Shared content", "Link", "Method"},
	})

	Settings = extract.Register(extract.Pattern{
		Member:    "Settings.txt",
		Fields:    fields("Interests"),
		Columns:   []string{"Interests"},
		Shape:     extract.ShapeDelimited,
		Delimiter: "|",
	})

	Post = extract.Register(extract.Pattern{
		Member:  "Post.txt",
		Fields:  fields("Date", "Link", "Like(s)"),
		Columns: []string{"Time and date", "Link", "Number of likes"},
	})
)
