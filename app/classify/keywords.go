package classify

import (
	"regexp"
)

// Topic labels used both for keyword category assignment and as the
// candidate set sent to the zero-shot service.
const (
	TopicAIML          = "AI & ML"
	TopicCybersecurity = "Cybersecurity & Privacy"
	TopicCloudDevOps   = "Cloud Computing & DevOps"
	TopicSoftwareDev   = "Software Development & Web Technologies"
	TopicDataScience   = "Data Science & Analytics"
	TopicEmergingTech  = "Emerging Technologies"
	TopicBigTech       = "Big Tech & Industry Trends"
	TopicTechCulture   = "Tech Culture & Work"
	TopicOpenSource    = "Open Source"
)

var TopicLabels = []string{
	TopicAIML, TopicCybersecurity, TopicCloudDevOps,
	TopicSoftwareDev, TopicDataScience, TopicEmergingTech,
	TopicBigTech, TopicTechCulture, TopicOpenSource,
}

// topicPriority breaks ties between equally-scoring keyword categories and
// fixes the evaluation order. TopicEmergingTech is the default when no
// category matches, so it carries no keyword set.
var topicPriority = []string{
	TopicCybersecurity,
	TopicCloudDevOps,
	TopicOpenSource,
	TopicAIML,
	TopicBigTech,
	TopicSoftwareDev,
	TopicDataScience,
	TopicTechCulture,
}

var topicKeywords = map[string][]string{
	TopicCybersecurity: {
		"security", "cybersecurity", "hack", "hacker", "breach", "vulnerability",
		"exploit", "cve", "encryption", "privacy", "malware", "ransomware",
		"phishing", "zero-day", "firewall", "vpn", "authentication", "password",
		"infosec", "zero trust", "mfa", "sso", "xss", "sql injection",
		"incident response", "bug bounty", "botnet", "cryptography",
	},
	TopicCloudDevOps: {
		"cloud", "aws", "azure", "gcp", "docker", "kubernetes", "devops",
		"ci/cd", "deployment", "infrastructure", "serverless", "microservices",
		"terraform", "ansible", "helm", "cloudflare", "s3", "ec2", "lambda",
		"service mesh", "prometheus", "grafana", "observability",
	},
	TopicOpenSource: {
		"open source", "github", "gitlab", "linux", "ubuntu", "debian", "fedora",
		"apache", "mozilla", "gnu", "gpl", "mit license", "fork", "pull request",
		"contributor", "maintainer", "foss", "kde", "gnome", "freebsd",
	},
	TopicAIML: {
		"ai", "artificial intelligence", "machine learning", "neural network",
		"deep learning", "nlp", "computer vision", "tensorflow", "pytorch",
		"chatgpt", "llm", "gpt", "transformer", "openai", "anthropic", "claude",
		"gemini", "copilot", "chatbot", "robotics", "llama", "stable diffusion",
		"large language model", "prompt engineering", "embedding", "inference",
	},
	TopicBigTech: {
		"google", "microsoft", "apple", "amazon", "meta", "facebook", "twitter",
		"tesla", "nvidia", "intel", "amd", "samsung", "startup",
		"venture capital", "funding", "ipo", "acquisition", "merger",
		"silicon valley", "unicorn", "bytedance", "tiktok", "alibaba", "huawei",
		"oracle", "ibm", "salesforce", "adobe",
	},
	TopicSoftwareDev: {
		"programming", "coding", "developer", "software", "web development",
		"javascript", "python", "react", "node.js", "framework", "api",
		"frontend", "backend", "typescript", "angular", "vue", "java", "c++",
		"rust", "kotlin", "swift", "flutter", "ios", "android", "django",
		"flask", "spring", ".net",
	},
	TopicDataScience: {
		"data science", "analytics", "big data", "database", "sql",
		"visualization", "statistics", "pandas", "numpy", "tableau", "power bi",
		"data mining", "etl", "data warehouse", "nosql", "mongodb",
		"postgresql", "mysql", "data pipeline", "jupyter", "spark", "hadoop",
		"snowflake", "redshift", "bigquery",
	},
	TopicTechCulture: {
		"remote work", "work from home", "developer survey", "salary", "hiring",
		"interview", "workplace", "burnout", "productivity", "tech workers",
		"engineers", "engineering", "stackoverflow", "stack overflow", "layoff",
		"onboarding", "work visa",
	},
}

// techKeywords feed the tech-relevance score. Matching is plain substring
// containment over the lowercased title+summary.
var techKeywords = []string{
	"technology", "tech", "software", "hardware", "artificial intelligence",
	"ai", "machine learning", "ml", "programming", "coding", "developer",
	"development", "computer", "computing", "digital", "internet", "web",
	"app", "application", "startup", "silicon valley", "google", "microsoft",
	"apple", "amazon", "meta", "facebook", "twitter", "tesla", "nvidia",
	"cybersecurity", "security", "blockchain", "cryptocurrency", "bitcoin",
	"cloud", "data science", "analytics", "algorithm", "api", "database",
	"framework", "open source", "github", "linux", "windows", "android",
	"ios", "mobile", "smartphone", "robotics", "automation", "fintech",
	"saas", "platform", "gaming", "virtual reality", "vr",
	"augmented reality", "quantum computing", "semiconductor", "chip",
	"processor", "server", "network", "wifi", "bluetooth", "device",
	"python", "javascript", "java", "react", "node", "typescript", "rust",
	"kubernetes", "docker", "aws", "azure", "gcp", "devops", "ci/cd",
	"agile", "bug", "feature", "release", "version", "update", "upgrade",
	"patch", "chatbot", "gpt", "llm", "neural", "model", "training",
	"dataset", "inference", "stackoverflow", "stack overflow", "code",
	"engineers", "engineering",
}

// rejectKeywords feed the reject score: promotional, adult, and clearly
// off-topic content that must never reach the store.
var rejectKeywords = []string{
	// Adult content
	"porn", "explicit", "nsfw", "erotic", "nude", "escort", "xxx",

	// Promotional and sales
	"lifetime subscription", "lifetime access", "limited time offer",
	"special deal", "discount", "sale price", "reg. price", "half off",
	"save money", "cheap price", "bargain", "promo code", "coupon",
	"deal of the day", "flash sale", "membership deal", "get it now",
	"buy now", "order today", "free trial", "binge-watching",
	"curiosity stream", "netflix", "hulu", "disney plus", "amazon prime",

	// Government, policy, housing
	"government policy", "housing policy", "public housing",
	"income ceiling", "eligibility criteria", "minister", "ministry",
	"parliament", "senator", "urban planning", "property prices",
	"affordable housing", "mortgage rates", "housing grants",

	// Sports and recreation
	"football", "basketball", "baseball", "soccer", "golf", "tennis",
	"hockey", "rugby", "cricket", "olympics", "fifa", "nfl", "nba",
	"athlete", "stadium", "championship",

	// Health and medical
	"doctor", "hospital", "patient", "disease", "vaccine", "medicine",
	"therapy", "surgery", "clinic", "prescription", "symptoms", "diagnosis",
	"cancer", "diabetes", "depression", "anxiety",

	// Lifestyle
	"parenting", "pregnancy", "wedding", "divorce", "dating", "romance",
	"toddler", "infant",

	// Food
	"recipe", "cooking", "restaurant", "dining", "chef", "nutrition",
	"calories", "ingredients", "baking", "grocery", "takeout",

	// Fashion and beauty
	"makeup", "skincare", "clothing", "outfit", "jewelry", "cosmetics",
	"perfume", "salon", "boutique",

	// Politics
	"election", "president", "congress", "democracy", "republican",
	"democrat", "ballot", "legislation", "lawsuit",

	// Religion
	"church", "prayer", "spiritual", "bible", "worship", "prophet",
	"priest", "pastor",

	// Travel
	"vacation", "tourism", "hotel", "airline", "cruise", "resort",
	"sightseeing", "passport",

	// Finance (non-fintech)
	"real estate", "mortgage", "insurance", "credit card", "retirement",
	"pension", "realtor", "forex trading", "stock tips",

	// Entertainment
	"celebrity", "movie", "film", "concert", "album", "actor", "actress",
	"singer", "musician", "tv show", "sitcom", "theater", "paparazzi",
	"red carpet", "box office",

	// Word games and puzzles
	"wordle", "crossword", "sudoku", "nyt games", "word games",

	// Weather and environment
	"hurricane", "tornado", "flood", "drought", "earthquake", "tsunami",
	"wildfire", "smog",

	// Agriculture and crafts
	"harvest", "livestock", "cattle", "tractor", "fertilizer", "knitting",
	"sewing", "pottery", "woodworking", "carpentry", "welding",

	// Spam markers
	"tl;dr", "tldr", "exclusive access", "act now", "dont miss out",
	"don't miss out", "while supplies last", "hurry up", "last chance",
	"expires soon", "urgent",
}

// pricePatterns detect currency and discount phrasing; three or more hits
// mark an entry as promotional regardless of other signals.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\d+(?:\.\d+)?`),
	regexp.MustCompile(`(?i)\d+%\s*off`),
	regexp.MustCompile(`(?i)reg\.\s*\$\d+`),
	regexp.MustCompile(`(?i)save \$\d+`),
	regexp.MustCompile(`(?i)now \$\d+`),
}
