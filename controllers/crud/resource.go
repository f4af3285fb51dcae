// Package crud serves the list/get/create/update/delete endpoints shared by every catalog entity.
package crud

import (
	"byway/middleware"
	"byway/models"
	"byway/validators"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Store[E any] interface {
	Page(ctx context.Context, page, size int) ([]E, int64, error)
	All(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id uint) (*E, error)
	Create(ctx context.Context, e *E) error
	Update(ctx context.Context, e *E) error
	Delete(ctx context.Context, e *E) error
}

// Rules holds the authorization check for each operation. A nil rule denies.
type Rules struct {
	List   middleware.Rule
	All    middleware.Rule
	Get    middleware.Rule
	Create middleware.Rule
	Update middleware.Rule
	Delete middleware.Rule
}

// Resource wires a Store to HTTP. E is the stored entity, D its request/response shape.
type Resource[E any, D any] struct {
	Name  string
	Store Store[E]
	Rules Rules

	// Body parses and validates a request body and stores a *D under BodyKey.
	Body    fiber.Handler
	BodyKey string

	ToDTO    func(e *E) D
	ToEntity func(ctx context.Context, d *D) (E, error)
	Apply    func(ctx context.Context, e *E, d *D) error

	Validate     func(ctx context.Context, d *D) error
	BeforeUpdate func(ctx context.Context, e *E) error
	BeforeDelete func(ctx context.Context, e *E) error
	AfterWrite   func(ctx context.Context)

	PageSize int
}

// Mount registers GET /, GET /all, GET /:id, POST /, PUT /:id and DELETE /:id on r.
func (res *Resource[E, D]) Mount(r fiber.Router) {
	id := validators.ID(res.Name)
	r.Get("/", res.guard(res.Rules.List), res.list)
	r.Get("/all", res.guard(res.Rules.All), res.all)
	r.Get("/:id", id, res.guard(res.Rules.Get), res.get)
	r.Post("/", res.guard(res.Rules.Create), res.Body, res.create)
	r.Put("/:id", id, res.guard(res.Rules.Update), res.Body, res.update)
	r.Delete("/:id", id, res.guard(res.Rules.Delete), res.delete)
}

func (res *Resource[E, D]) guard(rule middleware.Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := middleware.CurrentPrincipal(c)
		id, _ := c.Locals("id").(uint)
		if rule == nil || !rule(p, id) {
			return middleware.Deny(c, p)
		}
		return c.Next()
	}
}

func (res *Resource[E, D]) list(c *fiber.Ctx) error {
	size := res.PageSize
	if size <= 0 {
		size = models.DefaultResourcePage
	}
	page, size := models.ClampPage(c.QueryInt("pageNumber", 1), c.QueryInt("pageSize", size), size)

	items, total, err := res.Store.Page(c.UserContext(), page, size)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	out := models.MapPage(models.NewPage(items, total, page, size), res.ToDTO)
	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("%ss fetched successfully.", res.Name), out)
}

func (res *Resource[E, D]) all(c *fiber.Ctx) error {
	items, err := res.Store.All(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	out := make([]D, len(items))
	for i := range items {
		out[i] = res.ToDTO(&items[i])
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("%ss fetched successfully.", res.Name), out)
}

func (res *Resource[E, D]) get(c *fiber.Ctx) error {
	e, err := res.Store.GetByID(c.UserContext(), c.Locals("id").(uint))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("%s fetched successfully.", res.Name), res.ToDTO(e))
}

func (res *Resource[E, D]) body(c *fiber.Ctx) (*D, error) {
	d, ok := c.Locals(res.BodyKey).(*D)
	if !ok {
		return nil, fmt.Errorf("%s body missing under %q", res.Name, res.BodyKey)
	}
	if res.Validate != nil {
		if err := res.Validate(c.UserContext(), d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (res *Resource[E, D]) create(c *fiber.Ctx) error {
	ctx := c.UserContext()
	d, err := res.body(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	e, err := res.ToEntity(ctx, d)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := res.Store.Create(ctx, &e); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	res.afterWrite(ctx)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, fmt.Sprintf("%s created successfully.", res.Name), res.ToDTO(&e))
}

func (res *Resource[E, D]) update(c *fiber.Ctx) error {
	ctx := c.UserContext()
	d, err := res.body(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	e, err := res.Store.GetByID(ctx, c.Locals("id").(uint))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if res.BeforeUpdate != nil {
		if err := res.BeforeUpdate(ctx, e); err != nil {
			return middleware.ErrorResponse(c, err)
		}
	}
	if err := res.Apply(ctx, e, d); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := res.Store.Update(ctx, e); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	res.afterWrite(ctx)
	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("%s updated successfully.", res.Name), res.ToDTO(e))
}

func (res *Resource[E, D]) delete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	e, err := res.Store.GetByID(ctx, c.Locals("id").(uint))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if res.BeforeDelete != nil {
		if err := res.BeforeDelete(ctx, e); err != nil {
			return middleware.ErrorResponse(c, err)
		}
	}
	if err := res.Store.Delete(ctx, e); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	res.afterWrite(ctx)
	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("%s deleted successfully.", res.Name), nil)
}

func (res *Resource[E, D]) afterWrite(ctx context.Context) {
	if res.AfterWrite != nil {
		res.AfterWrite(ctx)
	}
}
