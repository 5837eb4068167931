package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bazaar-dev/bazaar/internal/admin"
	"github.com/bazaar-dev/bazaar/internal/apperr"
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/bazaar-dev/bazaar/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type AuthorRequest struct {
	UserID    uint    `json:"user_id" binding:"required"`
	FirstName string  `json:"first_name" binding:"max=90"`
	LastName  string  `json:"last_name" binding:"max=90"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	Bio       string  `json:"bio" binding:"max=500"`
	Location  string  `json:"location" binding:"max=30"`
	BirthDate *string `json:"birth_date"`
}

type AuthorResponse struct {
	ID        uint    `json:"id"`
	UserID    uint    `json:"user_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Bio       string  `json:"bio"`
	Location  string  `json:"location"`
	BirthDate *string `json:"birth_date"`
}

// AuthorListItem is the author changelist row: first and last name only.
type AuthorListItem struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type BlogCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"required,max=255,slug"`
	Description string `json:"description" binding:"required"`
}

type BlogCategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type TopicRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type TopicResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	CategoryID  uint   `json:"category_id"`
	Description string `json:"description"`
}

type PostRequest struct {
	Title         string     `json:"title" binding:"required,max=255"`
	Subtitle      string     `json:"subtitle" binding:"required,max=500"`
	Slug          string     `json:"slug" binding:"required,max=255,slug"`
	AuthorID      uint       `json:"author_id" binding:"required"`
	Body          string     `json:"body" binding:"required"`
	Source        string     `json:"source" binding:"required,max=500"`
	PublishedDate *time.Time `json:"published_date"`
	Tags          []string   `json:"tags" binding:"dive,max=100"`
}

type PostResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Slug          string     `json:"slug"`
	AuthorID      uint       `json:"author_id"`
	Body          string     `json:"body"`
	Source        string     `json:"source"`
	CreatedOn     time.Time  `json:"created_on"`
	UpdatedOn     time.Time  `json:"updated_on"`
	PublishedDate *time.Time `json:"published_date"`
	Tags          []string   `json:"tags"`
}

type TagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"omitempty,max=100,slug"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *Server) AuthorResource() *admin.Resource[models.Author, AuthorRequest] {
	return &admin.Resource[models.Author, AuthorRequest]{
		Name:  "authors",
		Order: "id",
		Apply: func(_ *gorm.DB, in *AuthorRequest, m *models.Author) error {
			m.UserID = in.UserID
			m.FirstName = in.FirstName
			m.LastName = in.LastName
			m.Email = in.Email
			m.Bio = in.Bio
			m.Location = in.Location
			m.BirthDate = nil

			if in.BirthDate != nil && *in.BirthDate != "" {
				t, err := time.Parse(dateLayout, *in.BirthDate)
				if err != nil {
					return apperr.Invalid("birth_date", "Date has wrong format. Use YYYY-MM-DD.")
				}
				d := datatypes.Date(t)
				m.BirthDate = &d
			}

			return nil
		},
		View: func(_ *gin.Context, m *models.Author) any {
			resp := AuthorResponse{
				ID:        m.ID,
				UserID:    m.UserID,
				FirstName: m.FirstName,
				LastName:  m.LastName,
				Email:     m.Email,
				Bio:       m.Bio,
				Location:  m.Location,
			}

			if m.BirthDate != nil {
				formatted := time.Time(*m.BirthDate).Format(dateLayout)
				resp.BirthDate = &formatted
			}

			return resp
		},
		ListView: func(_ *gin.Context, m *models.Author) any {
			return AuthorListItem{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName}
		},
		Events: s.Hub,
	}
}

func (s *Server) BlogCategoryResource() *admin.Resource[models.BlogCategory, BlogCategoryRequest] {
	return &admin.Resource[models.BlogCategory, BlogCategoryRequest]{
		Name:  "blog-categories",
		Order: "name",
		Apply: func(_ *gorm.DB, in *BlogCategoryRequest, m *models.BlogCategory) error {
			m.Name = in.Name
			m.Slug = in.Slug
			m.Description = in.Description
			return nil
		},
		View: func(_ *gin.Context, m *models.BlogCategory) any {
			return BlogCategoryResponse{ID: m.ID, Name: m.Name, Slug: m.Slug, Description: m.Description}
		},
		Events: s.Hub,
	}
}

func (s *Server) TopicResource() *admin.Resource[models.Topic, TopicRequest] {
	return &admin.Resource[models.Topic, TopicRequest]{
		Name:  "topics",
		Order: "name",
		Apply: func(_ *gorm.DB, in *TopicRequest, m *models.Topic) error {
			m.Name = in.Name
			m.CategoryID = in.CategoryID
			m.Description = in.Description
			return nil
		},
		View: func(_ *gin.Context, m *models.Topic) any {
			return TopicResponse{ID: m.ID, Name: m.Name, CategoryID: m.CategoryID, Description: m.Description}
		},
		Events: s.Hub,
	}
}

func (s *Server) PostResource() *admin.Resource[models.Post, PostRequest] {
	return &admin.Resource[models.Post, PostRequest]{
		Name:    "posts",
		Preload: []string{"Tags"},
		Order:   "created_on DESC",
		Apply: func(_ *gorm.DB, in *PostRequest, m *models.Post) error {
			m.Title = in.Title
			m.Subtitle = in.Subtitle
			m.Slug = in.Slug
			m.AuthorID = in.AuthorID
			m.Body = in.Body
			m.Source = in.Source
			m.PublishedDate = in.PublishedDate
			return nil
		},
		AfterSave: func(tx *gorm.DB, in *PostRequest, m *models.Post) error {
			tags, err := resolveTags(tx, in.Tags)
			if err != nil {
				return err
			}
			return tx.Model(m).Omit("Tags.*").Association("Tags").Replace(tags)
		},
		View: func(_ *gin.Context, m *models.Post) any {
			names := make([]string, 0, len(m.Tags))
			for _, tag := range m.Tags {
				names = append(names, tag.Name)
			}

			return PostResponse{
				ID:            m.ID,
				Title:         m.Title,
				Subtitle:      m.Subtitle,
				Slug:          m.Slug,
				AuthorID:      m.AuthorID,
				Body:          m.Body,
				Source:        m.Source,
				CreatedOn:     m.CreatedOn,
				UpdatedOn:     m.UpdatedOn,
				PublishedDate: m.PublishedDate,
				Tags:          names,
			}
		},
		Events: s.Hub,
	}
}

func (s *Server) TagResource() *admin.Resource[models.Tag, TagRequest] {
	return &admin.Resource[models.Tag, TagRequest]{
		Name:  "tags",
		Order: "name",
		Apply: func(_ *gorm.DB, in *TagRequest, m *models.Tag) error {
			m.Name = strings.TrimSpace(in.Name)
			m.Slug = in.Slug

			if m.Slug == "" {
				m.Slug = utils.Slugify(m.Name)
			}

			if m.Slug == "" {
				return apperr.Invalid("slug", "Could not derive a slug from the name; provide one.")
			}

			return nil
		},
		View: func(_ *gin.Context, m *models.Tag) any {
			return TagResponse{ID: m.ID, Name: m.Name, Slug: m.Slug}
		},
		Events: s.Hub,
	}
}

// resolveTags returns the tags named in names, creating missing ones. Names
// are trimmed and de-duplicated; empty names are skipped.
func resolveTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := map[string]bool{}

	for _, raw := range names {
		name := strings.TrimSpace(raw)

		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		err := tx.Where("name = ?", name).First(&tag).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag, err = createTag(tx, name)
		}

		if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

// createTag picks a free slug by suffixing _1, _2, ... when the plain slug of
// name is taken.
func createTag(tx *gorm.DB, name string) (models.Tag, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "tag"
	}

	slug := base

	for i := 1; ; i++ {
		var count int64

		if err := tx.Model(&models.Tag{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return models.Tag{}, err
		}

		if count == 0 {
			break
		}

		slug = fmt.Sprintf("%s_%d", base, i)
	}

	tag := models.Tag{Name: name, Slug: slug}

	if err := tx.Create(&tag).Error; err != nil {
		return models.Tag{}, err
	}

	return tag, nil
}
