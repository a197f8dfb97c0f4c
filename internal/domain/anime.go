package domain

type Status string

const (
	StatusFinished Status = "FINISHED"
	StatusOngoing  Status = "ONGOING"
	StatusUpcoming Status = "UPCOMING"
	StatusUnknown  Status = "UNKNOWN"
)

func Statuses() []Status {
	return []Status{StatusFinished, StatusOngoing, StatusUpcoming, StatusUnknown}
}

func (s Status) Valid() bool {
	for _, v := range Statuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Anime est une entrée du dataset. Les enregistrements sont en lecture seule
// une fois chargés.
type Anime struct {
	ID        int
	Title     string
	Type      string
	Episodes  int
	Status    Status
	Picture   string
	Thumbnail string
	Tags      []string

	// Saison de diffusion; Year == 0 signifie inconnue.
	Season string
	Year   int
}

// AnimeView est la projection commune (list, detail, genre, year, search.detail).
type AnimeView struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	Episodes  int      `json:"episodes"`
	Status    Status   `json:"status"`
	Picture   string   `json:"picture"`
	Thumbnail string   `json:"thumbnail"`
	Genre     []string `json:"genre"`
}

type EpisodeView struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Episodes int    `json:"episodes"`
}

func (a Anime) View() AnimeView {
	genre := a.Tags
	if genre == nil {
		genre = []string{}
	}
	return AnimeView{
		ID:        a.ID,
		Title:     a.Title,
		Type:      a.Type,
		Episodes:  a.Episodes,
		Status:    a.Status,
		Picture:   a.Picture,
		Thumbnail: a.Thumbnail,
		Genre:     genre,
	}
}

func (a Anime) EpisodeView() EpisodeView {
	return EpisodeView{ID: a.ID, Title: a.Title, Episodes: a.Episodes}
}
