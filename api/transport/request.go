package transport

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ActivityRequest struct {
	ID          int64  `json:"id"`
	Date        string `json:"tanggal"`
	Category    string `json:"kategori"`
	Description string `json:"deskripsi"`
	Duration    int    `json:"durasi"`
}
