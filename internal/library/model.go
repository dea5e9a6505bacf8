package library

// Book is the client-side copy of a book record. The server owns the
// canonical record; the detail view patches its local copy after a
// successful edit.
type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Year      int    `json:"year,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	BookLink  string `json:"book_link,omitempty"`
}

// Note is a user-authored annotation stored on the server.
type Note struct {
	BookID int64  `json:"book_id"`
	Note   string `json:"note"`
}

// BookForm holds the editable fields collected from the edit form. Year is
// kept as the raw form string; a blank year is omitted from the update
// payload.
type BookForm struct {
	Title     string
	Author    string
	Year      string
	ImagePath string
}

// OtherBooksByAuthor filters the current book out of an author's book
// list. The detail view's "More by this author" section must never show
// the book being viewed.
func OtherBooksByAuthor(books []Book, currentID int64) []Book {
	others := make([]Book, 0, len(books))
	for _, b := range books {
		if b.ID != currentID {
			others = append(others, b)
		}
	}
	return others
}
