package reuters

// Raw upstream shapes. Only the fields the adapter consumes are declared;
// timestamps are typed as any because the endpoints mix ISO strings and
// numeric epochs.

type author struct {
	Name string `json:"name"`
}

type articleJSON struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	CanonicalURL  string   `json:"canonical_url"`
	Description   string   `json:"description"`
	PublishedTime any      `json:"published_time"`
	UpdatedTime   any      `json:"updated_time"`
	Authors       []author `json:"authors"`
	Kicker        struct {
		Names []string `json:"names"`
	} `json:"kicker"`
}

type topicResponse struct {
	Result struct {
		Topics []struct {
			Name     string `json:"name"`
			EntityID string `json:"entity_id"`
		} `json:"topics"`
		Articles []articleJSON `json:"articles"`
	} `json:"result"`
}

type sectionResponse struct {
	Result struct {
		Section struct {
			Title        string `json:"title"`
			SectionAbout string `json:"section_about"`
		} `json:"section"`
		Articles []articleJSON `json:"articles"`
	} `json:"result"`
}

// Wire API (mobile outbound feed) shapes.

type wireResponse struct {
	WireItems []wireItem `json:"wireitems"`
	Analytics struct {
		Title           string `json:"title"`
		ContentTitle    string `json:"content_title"`
		TopicChannel    string `json:"topic_channel"`
		TopicSubChannel string `json:"topic_sub_channel"`
	} `json:"analytics"`
	WireName        string `json:"wire_name"`
	CanonicalAction struct {
		URL string `json:"url"`
	} `json:"canonical_action"`
}

type wireItem struct {
	Templates []wireTemplate `json:"templates"`
}

type wireTemplate struct {
	Template string `json:"template"`
	Story    struct {
		Hed       string   `json:"hed"`
		Lede      string   `json:"lede"`
		USN       string   `json:"usn"`
		UpdatedAt any      `json:"updated_at"`
		Authors   []author `json:"authors"`
	} `json:"story"`
	TemplateAction struct {
		URL string `json:"url"`
	} `json:"template_action"`
}
