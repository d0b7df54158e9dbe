package handlers

// HomeData is the view model payload for the landing page.
type HomeData struct {
	Headline string
	Tagline  string
	Latest   []ArticleListItem
}

// BuildHomeData constructs the default landing page payload.
func BuildHomeData(latest []ArticleListItem) HomeData {
	return HomeData{
		Headline: "Meridian Press",
		Tagline:  "Independent writing on software, design, and the web.",
		Latest:   latest,
	}
}
