package api

// HairColor values accepted by the playground person endpoints.
const (
	HairWhite  = "white"
	HairBlack  = "black"
	HairBlonde = "blonde"
	HairBrown  = "brown"
	HairRed    = "red"
)

// PersonBase holds the person fields that are safe to echo back.
type PersonBase struct {
	FirstName string  `json:"first_name"   validate:"required,min=3,max=35"`
	LastName  string  `json:"last_name"    validate:"required,min=3,max=35"`
	Age       int     `json:"age_person"   validate:"required,gte=18,lte=115"`
	HairColor *string `json:"color_hair"   validate:"omitempty,oneof=white black blonde brown red"`
	Married   *bool   `json:"married"`
	Email     string  `json:"email_usr,omitempty"    validate:"omitempty,email"`
	Website   string  `json:"web_usr,omitempty"      validate:"omitempty,http_url"`
}

// Person is the playground person payload.
type Person struct {
	PersonBase
	PaymentCard string `json:"pay_card_usr" validate:"omitempty,credit_card"`
	Password    string `json:"password"     validate:"required,min=8"`
}

// PersonOut is the echoed person, without password and payment card.
type PersonOut struct {
	PersonBase
}

// Location is the second body of PUT /tutorial/person/{person_id}.
type Location struct {
	City    string `json:"city"    validate:"required,min=4,max=24"`
	State   string `json:"state"   validate:"required,min=4,max=24"`
	Country string `json:"country" validate:"required,min=4,max=24"`
	Latam   *bool  `json:"latam"   validate:"required"`
}

// UpdatePersonRequest is the body of PUT /tutorial/person/{person_id}.
type UpdatePersonRequest struct {
	Person   Person   `json:"person"   validate:"required"`
	Location Location `json:"location" validate:"required"`
}

// PersonLocationOut is the person merged with their location.
type PersonLocationOut struct {
	PersonBase
	Location
}

// PersonQuery is the query string of GET /tutorial/person/detail.
type PersonQuery struct {
	Name string `form:"name" validate:"omitempty,min=3,max=35"`
	Age  string `form:"age"  validate:"required"`
}

// TutorialLoginRequest is the form body of POST /tutorial/login.
type TutorialLoginRequest struct {
	Username string `form:"username" validate:"required,max=20"`
	Password string `form:"password" validate:"required"`
}

// TutorialLoginResponse echoes the username of POST /tutorial/login.
type TutorialLoginResponse struct {
	Username string `json:"username"`
}

// ContactRequest is the form body of POST /tutorial/contact.
type ContactRequest struct {
	FirstName string `form:"first_name" validate:"required,min=1,max=20"`
	LastName  string `form:"last_name"  validate:"required,min=1,max=20"`
	Email     string `form:"email"      validate:"required,email"`
	Message   string `form:"message"    validate:"required,min=20"`
}

// ImageInfo describes one uploaded image.
type ImageInfo struct {
	Filename string  `json:"filename"`
	Format   string  `json:"format"`
	SizeKB   float64 `json:"size_kb"`
}
