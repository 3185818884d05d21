package udemy

import "github.com/goccy/go-json"

type Category struct {
	Title string `json:"title"`
	Name  string `json:"name"`
}

// Categories accepts every shape the API has been seen to return:
// "Development", {title,name}, ["Dev","IT"] or [{title,name}, ...].
type Categories []Category

func (c *Categories) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*c = nil
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*c = nil
			return nil
		}
		*c = Categories{{Title: s, Name: s}}
		return nil

	case '{':
		var one Category
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*c = Categories{one}
		return nil

	case '[':
		var objs []Category
		if err := json.Unmarshal(b, &objs); err == nil {
			*c = objs
			return nil
		}
		var strs []string
		if err := json.Unmarshal(b, &strs); err != nil {
			return err
		}
		out := make(Categories, 0, len(strs))
		for _, s := range strs {
			if s != "" {
				out = append(out, Category{Title: s, Name: s})
			}
		}
		*c = out
		return nil
	}

	*c = nil
	return nil
}

type ListCoursesResponse struct {
	Results []Course `json:"results"`
	Next    string   `json:"next"`
	Count   int      `json:"count"`
}

type Course struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Level      string     `json:"level"`
	Categories Categories `json:"categories"`
	AvgRating  float64    `json:"avg_rating"`
}
