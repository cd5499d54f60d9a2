package content

import (
	"context"
	"strings"

	"portfolio/internal/model"
)

// Static serves the hand-authored records compiled into the binary.
type Static struct{}

func (Static) Projects(context.Context) ([]model.Project, error) {
	return []model.Project{
		{
			ID:          1,
			Slug:        "book-recommendation",
			Title:       "Book Recommendation System",
			Description: "Content-based recommendation engine with 85% accuracy using NLP, TF-IDF, and cosine similarity. Personalized user preferences integration.",
			Tech:        []string{"Flask", "Python", "MySQL", "NLP", "Scikit-learn", "NLTK", "Pandas"},
			Link:        "https://github.com/yourusername/book-recommendation",
			Image:       "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=500&h=300&fit=crop",
		},
		{
			ID:          2,
			Slug:        "house-rent-prediction",
			Title:       "House Rent Prediction Model",
			Description: "Ensemble ML model (XGBoost + Random Forest) achieving 0.91 R² score. Deployed as Flask API. Published research paper.",
			Tech:        []string{"XGBoost", "Random Forest", "Flask", "Scikit-learn", "Pandas"},
			Link:        "https://github.com/yourusername/house-rent-prediction",
			Image:       "https://images.unsplash.com/photo-1560518883-ce09059eeffa?w=500&h=300&fit=crop",
		},
	}, nil
}

func (Static) Skills(context.Context) ([]model.Skill, error) {
	return []model.Skill{
		{Category: "Languages", Items: []string{"C++", "Python", "JavaScript", "Java", "SQL", "C"}, Icon: "code"},
		{Category: "Frontend", Items: []string{"React.js", "Next.js", "HTML5", "CSS3", "Tailwind CSS"}, Icon: "palette"},
		{Category: "Backend", Items: []string{"Node.js", "Flask", "Express", "REST APIs", "GraphQL"}, Icon: "server"},
		{Category: "Database", Items: []string{"MySQL", "PostgreSQL", "MongoDB", "Redis"}, Icon: "database"},
		{Category: "ML/AI", Items: []string{"Scikit-learn", "TensorFlow", "NLP", "XGBoost", "Pandas", "NumPy"}, Icon: "brain"},
		{Category: "Tools", Items: []string{"Git", "Docker", "VS Code", "IntelliJ", "AWS", "Linux"}, Icon: "toolbox"},
	}, nil
}

func (Static) Achievements(context.Context) ([]model.Achievement, error) {
	return []model.Achievement{
		{Title: "Research Paper Published", Number: 1, Icon: "file-text", Desc: "Ensemble ML Methods"},
		{Title: "LeetCode Problems Solved", Number: 200, Icon: "code", Desc: "Strong DSA"},
		{Title: "GeeksforGeeks Solutions", Number: 50, Icon: "lightbulb", Desc: "Active Contributor"},
		{Title: "Professional Certifications", Number: 4, Icon: "certificate", Desc: "HackerRank, AWS"},
	}, nil
}

// DefaultProfile builds the owner profile around the configured display name.
func DefaultProfile(name, email string) model.Profile {
	return model.Profile{
		Name:     name,
		Initials: initials(name),
		Headline: "Full Stack Developer",
		Tagline:  "B.Tech CSE (AI) Graduate | ML Engineer | Problem Solver | 200+ LeetCode Solved",
		Email:    email,
		Socials: []model.Social{
			{Label: "GitHub", URL: "https://github.com/yourusername"},
			{Label: "LinkedIn", URL: "https://linkedin.com/in/yourusername"},
			{Label: "Email", URL: "mailto:" + email},
			{Label: "LeetCode", URL: "https://leetcode.com/yourusername"},
		},
	}
}

func initials(name string) string {
	var b strings.Builder
	n := 0
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
		n++
		if n == 2 {
			break
		}
	}
	return b.String()
}
