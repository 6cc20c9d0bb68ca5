package dbmongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names of the primary document store.
const (
	UsersCollection    = "users"
	PostsCollection    = "posts"
	FriendsCollection  = "friends"
	MessagesCollection = "messages"
	CoursesCollection  = "courses"
	EventsCollection   = "events"
)

// User is the identity record. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password" json:"-"`
	University        string             `bson:"university,omitempty" json:"university,omitempty"`
	Country           string             `bson:"country,omitempty" json:"country,omitempty"`
	ProfilePictureURL string             `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	Bio               string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Major             string             `bson:"major,omitempty" json:"major,omitempty"`
	Degree            string             `bson:"degree,omitempty" json:"degree,omitempty"`
	GraduationYear    int                `bson:"graduationYear,omitempty" json:"graduationYear,omitempty"`
	Skills            []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Interests         []string           `bson:"interests,omitempty" json:"interests,omitempty"`
	LinkedinURL       string             `bson:"linkedinUrl,omitempty" json:"linkedinUrl,omitempty"`
	GithubURL         string             `bson:"githubUrl,omitempty" json:"githubUrl,omitempty"`
	WebsiteURL        string             `bson:"websiteUrl,omitempty" json:"websiteUrl,omitempty"`
	Role              string             `bson:"role" json:"role"` // student, teacher, admin
	IsVerified        bool               `bson:"isVerified" json:"isVerified"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the projection of a user joined into posts, friend
// lists and conversations.
type PublicProfile struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email,omitempty" json:"email,omitempty"`
	ProfilePictureURL string             `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
}

// Reaction is one typed acknowledgment. At most one per user per parent;
// a repeat reaction overwrites type and timestamp in place.
type Reaction struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Type      string             `bson:"type" json:"type"` // like, love, haha, wow, sad, angry
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Media is one embedded media entry on a post.
type Media struct {
	Type      string `bson:"type" json:"type"` // image, video
	URL       string `bson:"url" json:"url"`
	Thumbnail string `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
}

// Reply is a comment-shaped record with no further nesting.
type Reply struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Text      string             `bson:"text" json:"text"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Reactions []Reaction         `bson:"reactions" json:"reactions"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Text      string             `bson:"text" json:"text"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Reactions []Reaction         `bson:"reactions" json:"reactions"`
	Replies   []Reply            `bson:"replies" json:"replies"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post embeds its reactions and its two-level comment tree. Author is
// immutable after creation; UpdatedAt refreshes on every write.
type Post struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Content      string              `bson:"content" json:"content"`
	Author       primitive.ObjectID  `bson:"author" json:"author"`
	Media        []Media             `bson:"media" json:"media"`
	Location     string              `bson:"location,omitempty" json:"location,omitempty"`
	Tags         []string            `bson:"tags" json:"tags"`
	Reactions    []Reaction          `bson:"reactions" json:"reactions"`
	Comments     []Comment           `bson:"comments" json:"comments"`
	Privacy      string              `bson:"privacy" json:"privacy"` // public, friends, private
	OriginalPost *primitive.ObjectID `bson:"originalPost,omitempty" json:"originalPost,omitempty"`
	SharedFrom   *primitive.ObjectID `bson:"sharedFrom,omitempty" json:"sharedFrom,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Friend is one symmetric edge. Uniqueness on the unordered pair is
// enforced by a compound index plus an either-orientation check on write.
// The enum carries a pending branch no operation sets or reads.
type Friend struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User1     primitive.ObjectID `bson:"user1" json:"user1"`
	User2     primitive.ObjectID `bson:"user2" json:"user2"`
	Status    string             `bson:"status" json:"status"` // pending, accepted
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Message is one directed message. Conversations are derived views.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Receiver  primitive.ObjectID `bson:"receiver" json:"receiver"`
	Text      string             `bson:"text" json:"text"`
	IsRead    bool               `bson:"isRead" json:"isRead"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type CourseMaterial struct {
	Title       string `bson:"title" json:"title"`
	Type        string `bson:"type" json:"type"` // document, video, link
	URL         string `bson:"url" json:"url"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type Course struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Subject     string               `bson:"subject" json:"subject"`
	Level       string               `bson:"level" json:"level"` // Licence, Master, Doctorat
	University  string               `bson:"university" json:"university"`
	Professor   string               `bson:"professor" json:"professor"`
	Materials   []CourseMaterial     `bson:"materials" json:"materials"`
	Students    []primitive.ObjectID `bson:"students" json:"students"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type Event struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Location    string               `bson:"location,omitempty" json:"location,omitempty"`
	Date        time.Time            `bson:"date" json:"date"`
	Organizer   primitive.ObjectID   `bson:"organizer" json:"organizer"`
	IsPublic    bool                 `bson:"isPublic" json:"isPublic"`
	Attendees   []primitive.ObjectID `bson:"attendees" json:"attendees"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
