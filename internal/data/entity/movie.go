package entity

type Movie struct {
	Base
	Title     string `db:"title"`
	Director  string `db:"director"`
	Genre     string `db:"genre"`
	PosterURL string `db:"poster_url"`
}
