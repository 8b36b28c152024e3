package models

// TopClient is one row of the best-clients report. Clients holds the
// looked-up client document (a one-element list, as $lookup produces).
type TopClient struct {
	Total   float64  `bson:"total"   json:"total"`
	Clients []Client `bson:"clients" json:"clients"`
}

// TopSeller is one row of the best-sellers report.
type TopSeller struct {
	Total   float64 `bson:"total"   json:"total"`
	Sellers []User  `bson:"sellers" json:"sellers"`
}
