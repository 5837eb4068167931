package models

// BlogCategory is the blog's flat category list. It is kept separate from the
// store's Category tree and lives in its own table.
type BlogCategory struct {
	BaseModel

	Name        string `gorm:"size:255;uniqueIndex;not null"`
	Slug        string `gorm:"size:255;uniqueIndex;not null"`
	Description string `gorm:"type:text;not null"`

	// Protected: a category with topics cannot be deleted.
	Topics []Topic `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (BlogCategory) TableName() string {
	return "blog_categories"
}

func (c BlogCategory) String() string {
	return c.Name
}
