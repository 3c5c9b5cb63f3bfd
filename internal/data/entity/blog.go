package entity

type Blog struct {
	Base     `bson:",inline"`
	Title    string `bson:"title"`
	Content  string `bson:"content"`
	ImageURL string `bson:"imageURL"`
}
