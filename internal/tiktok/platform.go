package tiktok

import (
	"github.com/JonMunkholm/ddport/internal/core"
	"github.com/JonMunkholm/ddport/internal/ddp"
)

// Key is the platform's registry key.
const Key = "tiktok"

// KnownFiles lists the members of the text export.
var KnownFiles = []string{
	"Transaction History.txt",
	"Most Recent Location Data.txt",
	"Comments.txt",
	"Purchases.txt",
	"Share History.txt",
	"Favorite Sounds.txt",
	"Searches.txt",
	"Login History.txt",
	"Favorite Videos.txt",
	"Favorite HashTags.txt",
	"Hashtag.txt",
	"Location Reviews.txt",
	"Favorite Effects.txt",
	"Following.txt",
	"Status.txt",
	"Browsing History.txt",
	"Like List.txt",
	"Follower.txt",
	"Watch Live settings.txt",
	"Go Live settings.txt",
	"Go Live History.txt",
	"Watch Live History.txt",
	"Profile Info.txt",
	"Autofill.txt",
	"Post.txt",
	"Block List.txt",
	"Settings.txt",
	"Customer support history.txt",
	"Communication with shops.txt",
	"Current Payment Information.txt",
	"Returns and Refunds History.txt",
	"Product Reviews.txt",
	"Order History.txt",
	"Vouchers.txt",
	"Saved Address Information.txt",
	"Order dispute history.txt",
	"Product Browsing History.txt",
	"Shopping Cart List.txt",
	"Direct Messages.txt",
	"Off TikTok Activity.txt",
	"Ad Interests.txt",
}

// Manifests declares the recognised export categories.
func Manifests() []ddp.Manifest {
	return []ddp.Manifest{
		ddp.NewManifest("json_txt", ddp.FiletypeJSON, ddp.LanguageEN, KnownFiles...),
	}
}

func text(en, nl string) core.Translatable {
	return core.NewTranslatable(map[string]string{"en": en, "nl": nl})
}

// Tables lists the review tables in display order.
func Tables() []core.DisplaySpec {
	return []core.DisplaySpec{
		{
			Name:        "tiktok_favorite_videos",
			Title:       text("Favorite video's", "Favoriete video's"),
			Description: core.Same("In the table below, you will find the videos that belong to your favorites."),
			Matcher:     FavoriteVideos,
		},
		{
			Name:        "tiktok_following",
			Title:       core.Same("Who you are following"),
			Description: core.Same("In the table below you can find the usernames of the accounts you are following"),
			Matcher:     Following,
		},
		{
			Name:  "tiktok_like_list",
			Title: text("Videos you have liked", "Video's die je hebt geliket"),
			Description: text(
				"In the table below, you will find the videos you have liked and when that was.",
				"In de tabel hieronder vind je de video's die je hebt geliket en wanneer dat was.",
			),
			Matcher: LikeList,
		},
		{
			Name:        "tiktok_login_history",
			Title:       core.Same("When you logged in to TikTok"),
			Description: core.Same("In the table below you can find the date and the time you logged in to TikTok"),
			Matcher:     LoginHistory,
		},
		{
			Name:  "tiktok_searches",
			Title: text("Search terms", "Zoektermen"),
			Description: text(
				"The table below shows what you have searched for and when. The size of the words in the chart indicates how often the search term appears in your data.",
				"De tabel hieronder laat zien wat je hebt gezocht en wanneer dat was. De grootte van de woorden in de grafiek geeft aan hoe vaak de zoekterm voorkomt in jouw gegevens.",
			),
			Matcher: Searches,
			Visualizations: []core.Visualization{
				{Type: core.VisualizationWordCloud, Title: core.Same(""), TextColumn: "Search term"},
			},
		},
		{
			Name:  "tiktok_share_history",
			Title: text("Shared videos", "Gedeelde video's"),
			Description: text(
				"The table below shows what you have shared, at what time, and how.",
				"In de tabel hieronder vind je wat je hebt gedeeld, op welk tijdstip en de manier waarop.",
			),
			Matcher: ShareHistory,
		},
		{
			Name:  "tiktok_video_browsing_history",
			Title: text("Watch history", "Kijkgeschiedenis"),
			Description: text(
				"The table below indicates exactly which TikTok videos you have watched and when that was.",
				"De tabel hieronder geeft aan welke TikTok video's je precies hebt bekeken en wanneer dat was.",
			),
			Matcher: BrowsingHistory,
		},
		{
			Name:        "tiktok_comments",
			Title:       core.Same("Comments you posted on TikTok"),
			Description: core.Same("In the table below you can find the comments you placed on tiktok"),
			Matcher:     Comments,
		},
		{
			Name:        "tiktok_post",
			Title:       core.Same("Your post history on TikTok"),
			Description: core.Same("The table below shows the posts you made on TikTok"),
			Matcher:     Post,
		},
	}
}

// Texts holds the page headers.
var Texts = core.PageTexts{
	SubmitFileHeader: text("Select your TikTok file", "Selecteer uw TikTok bestand"),
	ReviewHeader:     text("Your TikTok data", "Uw TikTok gegevens"),
	ReviewDescription: text(
		"Below you will find a selection of your TikTok data.",
		"Hieronder vindt u een geselecteerde weergave van uw TikTok-gegevens.",
	),
	RetryHeader: text("Try again", "Probeer opnieuw"),
}

// Platform returns the TikTok platform definition.
func Platform() core.Platform {
	return core.Platform{
		Key:        Key,
		Name:       "TikTok",
		Manifests:  Manifests(),
		Extensions: core.DefaultExtensions,
		Tables:     Tables(),
		Texts:      Texts,
	}
}

func init() {
	core.RegisterPlatform(Platform())
}
