package models

// All returns every entity of the schema, parents before children, so that
// migrations create referenced tables first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Author{},
		&BlogCategory{},
		&Topic{},
		&Tag{},
		&Post{},
		&Category{},
		&ProductType{},
		&ProductSpecification{},
		&Product{},
		&ProductSpecificationValue{},
		&ProductImage{},
	}
}
