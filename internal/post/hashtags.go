package post

import "strings"

// Every post carries these two, whatever the content.
var genericTags = []string{"#AI", "#ArtificialIntelligence"}

// Keyword-to-hashtag map, scanned against title+summary in this order so
// tag selection stays deterministic.
var topicTags = []struct {
	keyword string
	tag     string
}{
	{"machine learning", "#MachineLearning"},
	{"deep learning", "#DeepLearning"},
	{"neural network", "#NeuralNetworks"},
	{"chatgpt", "#ChatGPT"},
	{"gemini", "#GoogleGemini"},
	{"claude", "#Claude"},
	{"generative", "#GenerativeAI"},
	{"startup", "#Startup"},
	{"funding", "#TechFunding"},
	{"research", "#AIResearch"},
	{"ethics", "#AIEthics"},
	{"regulation", "#AIRegulation"},
	{"automation", "#Automation"},
	{"innovation", "#Innovation"},
	{"technology", "#Technology"},
	{"future", "#FutureOfTech"},
}

// GenerateHashtags returns up to max tags: the generic AI pair plus topic
// tags matched in the text.
func GenerateHashtags(text string, max int) []string {
	if max < len(genericTags) {
		max = len(genericTags)
	}

	tags := make([]string, 0, max)
	tags = append(tags, genericTags...)

	lower := strings.ToLower(text)
	for _, t := range topicTags {
		if len(tags) >= max {
			break
		}
		if strings.Contains(lower, t.keyword) {
			tags = append(tags, t.tag)
		}
	}
	return tags
}
