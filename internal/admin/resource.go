// Package admin provides the CRUD plumbing shared by the administrative
// endpoints. Each entity is registered explicitly with its own Resource.
package admin

import (
	"log"
	"net/http"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/apperr"
	"github.com/bazaar-dev/bazaar/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Model is satisfied by every entity through the embedded models.BaseModel.
type Model interface {
	GetID() uint
}

// Change actions sent to the Broadcaster.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Broadcaster is told about every successful write.
type Broadcaster interface {
	Broadcast(resource, action string, id uint)
}

// Resource wires the five CRUD endpoints of one entity. M is the entity and
// In the request body accepted for create and update.
type Resource[M Model, In any] struct {
	// Name is the URL segment and the name used in change events.
	Name string

	// Preload lists the associations loaded for Get and List.
	Preload []string

	// Order is the ORDER BY clause of List.
	Order string

	// Apply validates in and copies it onto m. It runs inside the write
	// transaction, with m zero on create and the stored row on update.
	Apply func(tx *gorm.DB, in *In, m *M) error

	// AfterSave runs after the row is written, in the same transaction.
	AfterSave func(tx *gorm.DB, in *In, m *M) error

	// AfterUpdate runs once an update has committed, with the row as it was
	// before and after the write.
	AfterUpdate func(before, after *M)

	// AfterDelete runs once a delete has committed.
	AfterDelete func(m *M)

	// View renders a row. ListView, when set, renders rows in List.
	View     func(ctx *gin.Context, m *M) any
	ListView func(ctx *gin.Context, m *M) any

	Events Broadcaster
}

// Register mounts the resource on group under /Name.
func (r *Resource[M, In]) Register(group *gin.RouterGroup) {
	g := group.Group("/" + r.Name)
	{
		g.GET("", r.List)
		g.POST("", r.Create)
		g.GET("/:id", r.Get)
		g.PUT("/:id", r.Update)
		g.DELETE("/:id", r.Delete)
	}
}

func (r *Resource[M, In]) loaded(tx *gorm.DB) *gorm.DB {
	for _, assoc := range r.Preload {
		tx = tx.Preload(assoc)
	}
	return tx
}

func (r *Resource[M, In]) List(ctx *gin.Context) {
	var rows []M

	q := r.loaded(db.DB.WithContext(ctx.Request.Context()))

	if r.Order != "" {
		q = q.Order(r.Order)
	} else {
		q = q.Order("id")
	}

	if err := q.Find(&rows).Error; err != nil {
		RespondError(ctx, err)
		return
	}

	view := r.ListView
	if view == nil {
		view = r.View
	}

	response := make([]any, 0, len(rows))

	for i := range rows {
		response = append(response, view(ctx, &rows[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (r *Resource[M, In]) Get(ctx *gin.Context) {
	id, err := utils.GetID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := r.find(ctx, id)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, r.View(ctx, m))
}

func (r *Resource[M, In]) Create(ctx *gin.Context) {
	var body In

	if err := ctx.ShouldBindJSON(&body); err != nil {
		RespondBindError(ctx, err)
		return
	}

	var m M

	err := db.DB.WithContext(ctx.Request.Context()).Transaction(func(tx *gorm.DB) error {
		return r.save(tx, &body, &m, true)
	})

	if err != nil {
		RespondError(ctx, err)
		return
	}

	r.respondWritten(ctx, http.StatusCreated, ActionCreated, m.GetID())
}

func (r *Resource[M, In]) Update(ctx *gin.Context) {
	id, err := utils.GetID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body In

	if err := ctx.ShouldBindJSON(&body); err != nil {
		RespondBindError(ctx, err)
		return
	}

	var before, m M

	err = db.DB.WithContext(ctx.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
			return err
		}

		before = m

		return r.save(tx, &body, &m, false)
	})

	if err != nil {
		RespondError(ctx, err)
		return
	}

	if r.AfterUpdate != nil {
		r.AfterUpdate(&before, &m)
	}

	r.respondWritten(ctx, http.StatusOK, ActionUpdated, id)
}

func (r *Resource[M, In]) Delete(ctx *gin.Context) {
	id, err := utils.GetID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := r.find(ctx, id)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	if err := db.DB.WithContext(ctx.Request.Context()).Delete(m).Error; err != nil {
		RespondError(ctx, err)
		return
	}

	if r.AfterDelete != nil {
		r.AfterDelete(m)
	}

	r.notify(ActionDeleted, id)
	ctx.Status(http.StatusNoContent)
}

func (r *Resource[M, In]) find(ctx *gin.Context, id uint) (*M, error) {
	var m M

	if err := r.loaded(db.DB.WithContext(ctx.Request.Context())).First(&m, id).Error; err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *Resource[M, In]) save(tx *gorm.DB, body *In, m *M, create bool) error {
	if r.Apply != nil {
		if err := r.Apply(tx, body, m); err != nil {
			return err
		}
	}

	var err error

	if create {
		err = tx.Omit(clause.Associations).Create(m).Error
	} else {
		err = tx.Omit(clause.Associations).Save(m).Error
	}

	if err != nil {
		return err
	}

	if r.AfterSave != nil {
		return r.AfterSave(tx, body, m)
	}

	return nil
}

func (r *Resource[M, In]) respondWritten(ctx *gin.Context, status int, action string, id uint) {
	m, err := r.find(ctx, id)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	r.notify(action, id)
	ctx.JSON(status, r.View(ctx, m))
}

func (r *Resource[M, In]) notify(action string, id uint) {
	if r.Events != nil {
		r.Events.Broadcast(r.Name, action, id)
	}
}

// RespondError writes err as a JSON error with the status it maps to.
func RespondError(ctx *gin.Context, err error) {
	err = apperr.Translate(err)
	status := apperr.Status(err)

	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", ctx.Request.Method, ctx.FullPath(), err)
	}

	ctx.JSON(status, gin.H{"error": apperr.Message(err)})
}
