package api

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"catalog-services/helpers"
	"catalog-services/types"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/h2non/filetype"
	"github.com/jackc/pgx/v4"
	"github.com/ninja-software/terror/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// productBlobNamespace prefixes every stored product image path.
const productBlobNamespace = "products"

// maxImageSizeKB caps uploaded product images.
const maxImageSizeKB = 2048

var acceptedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ProductController holds handlers for products
type ProductController struct {
	Log *zerolog.Logger
	API *API
}

// ProductRouter returns a new router for handling product requests
func ProductRouter(log *zerolog.Logger, api *API) chi.Router {
	c := &ProductController{
		Log: log,
		API: api,
	}

	r := chi.NewRouter()
	r.Get("/", WithError(c.List))
	r.Post("/", WithError(c.Create))
	r.Get("/{id}", WithError(c.Show))
	r.Put("/{id}", WithError(c.Update))
	r.Patch("/{id}", WithError(c.Update))
	r.Delete("/{id}", WithError(c.Delete))

	return r
}

// ProductListResponse is the response for the product list
type ProductListResponse struct {
	Products []*types.Product `json:"products"`
}

// ProductResponse wraps a single product with an outcome message
type ProductResponse struct {
	Message string         `json:"message,omitempty"`
	Product *types.Product `json:"product"`
}

// MessageResponse is a bare acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// List returns every product
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) (int, error) {
	products, err := c.API.Products.All(r.Context())
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "An error occurred while listing products")
	}
	return helpers.EncodeJSON(w, &ProductListResponse{Products: products})
}

// Create validates the submitted fields, stores the image blob and inserts
// the product. Nothing is written when validation fails.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) (int, error) {
	defer r.Body.Close()

	input, code, err := c.parseProductInput(w, r, true)
	if err != nil {
		return code, err
	}

	err = c.API.Blobs.Insert(r.Context(), input.Image, productBlobNamespace)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "An error occurred while creating the product")
	}

	product := &types.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Image:       null.StringFrom(input.Image.FilePath),
	}
	err = c.API.Products.Insert(r.Context(), product)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "An error occurred while creating the product")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	return helpers.EncodeJSON(w, &ProductResponse{
		Message: "Product created successfully",
		Product: product,
	})
}

// Show returns a single product by id
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) (int, error) {
	product, code, err := c.productFromURL(r)
	if err != nil {
		return code, err
	}
	return helpers.EncodeJSON(w, &ProductResponse{Product: product})
}

// Update replaces every non-image field and swaps the image blob when a new
// file is supplied. Validation runs after the lookup and before any mutation.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) (int, error) {
	defer r.Body.Close()

	product, code, err := c.productFromURL(r)
	if err != nil {
		return code, err
	}

	input, code, err := c.parseProductInput(w, r, false)
	if err != nil {
		return code, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock

	oldImage := product.Image
	if input.Image != nil {
		err = c.API.Blobs.Insert(r.Context(), input.Image, productBlobNamespace)
		if err != nil {
			return http.StatusInternalServerError, terror.Error(err, "An error occurred while updating the product")
		}
		product.Image = null.StringFrom(input.Image.FilePath)
	}

	err = c.API.Products.Update(r.Context(), product)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "An error occurred while updating the product")
	}

	// The record no longer references the replaced blob, safe to drop it.
	if input.Image != nil && oldImage.Valid {
		err = c.API.Blobs.Delete(r.Context(), oldImage.String)
		if err != nil {
			return http.StatusInternalServerError, terror.Error(err, "An error occurred while updating the product")
		}
	}

	return helpers.EncodeJSON(w, &ProductResponse{
		Message: "Product updated successfully",
		Product: product,
	})
}

// Delete removes the product record. The image blob is intentionally left
// behind; only image replacement cleans up blobs.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) (int, error) {
	product, code, err := c.productFromURL(r)
	if err != nil {
		return code, err
	}

	err = c.API.Products.Delete(r.Context(), product.ID)
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "An error occurred while deleting the product")
	}

	return helpers.EncodeJSON(w, &MessageResponse{Message: "Product deleted successfully"})
}

// productFromURL looks up the product named by the {id} URL param. An
// unparseable id is treated the same as an unknown one.
func (c *ProductController) productFromURL(r *http.Request) (*types.Product, int, error) {
	idStr := chi.URLParam(r, "id")
	uid, err := uuid.FromString(idStr)
	if err != nil {
		return nil, http.StatusNotFound, terror.Error(err, "Product not found")
	}

	product, err := c.API.Products.Get(r.Context(), types.ProductID(uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, http.StatusNotFound, terror.Error(err, "Product not found")
	}
	if err != nil {
		return nil, http.StatusInternalServerError, terror.Error(err, "An error occurred while fetching the product")
	}
	return product, http.StatusOK, nil
}

// productInput is a fully validated create/update form.
type productInput struct {
	Name        string
	Description null.String
	Price       decimal.Decimal
	Stock       int
	Image       *types.Blob
}

// parseProductInput reads the multipart form and validates every field,
// collecting all failures into a single field-error map.
func (c *ProductController) parseProductInput(w http.ResponseWriter, r *http.Request, imageRequired bool) (*productInput, int, error) {
	blob, params, err := parseUploadRequest(w, r, "image")
	if err != nil {
		return nil, http.StatusBadRequest, terror.Error(err, InputError.String())
	}

	fieldErrs := FieldErrors{}
	input := &productInput{Image: blob}

	input.Name = strings.TrimSpace(params["name"])
	if input.Name == "" {
		fieldErrs.Add("name", "Name is required.")
	} else if len(input.Name) > 255 {
		fieldErrs.Add("name", "Name must be 255 characters or less.")
	}

	if description, ok := params["description"]; ok && description != "" {
		input.Description = helpers.SanitiseNullString(description, c.API.HTMLSanitize)
	}

	if priceStr, ok := params["price"]; !ok || priceStr == "" {
		fieldErrs.Add("price", "Price is required.")
	} else {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			fieldErrs.Add("price", "Price must be a number.")
		} else if price.IsNegative() {
			fieldErrs.Add("price", "Price must be 0 or greater.")
		} else {
			input.Price = price
		}
	}

	if stockStr, ok := params["stock"]; !ok || stockStr == "" {
		fieldErrs.Add("stock", "Stock is required.")
	} else {
		stock, err := strconv.Atoi(stockStr)
		if err != nil {
			fieldErrs.Add("stock", "Stock must be an integer.")
		} else if stock < 0 {
			fieldErrs.Add("stock", "Stock must be 0 or greater.")
		} else {
			input.Stock = stock
		}
	}

	if blob == nil {
		if imageRequired {
			fieldErrs.Add("image", "An image is required.")
		}
	} else {
		if !acceptedImageMimeTypes[blob.MimeType] {
			fieldErrs.Add("image", "Image must be a jpeg, png, or gif.")
		}
		if blob.FileSizeBytes > maxImageSizeKB<<10 {
			fieldErrs.Add("image", fmt.Sprintf("Image must be %d kilobytes or less.", maxImageSizeKB))
		}
	}

	if len(fieldErrs) > 0 {
		return nil, http.StatusUnprocessableEntity, &ValidationError{Errors: fieldErrs}
	}
	return input, http.StatusOK, nil
}

// parseUploadRequest will read a multipart form request that includes both a
// file part and regular form fields, returning the file as a blob ready to be
// inserted, plus the remaining fields keyed by name
func parseUploadRequest(w http.ResponseWriter, r *http.Request, filePart string) (*types.Blob, map[string]string, error) {
	// Limit size to 10MB (10<<20)
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, nil, terror.Error(err, "parse error")
	}

	var blob *types.Blob
	params := make(map[string]string)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, terror.Error(err, "parse error")
		}

		data, err := ioutil.ReadAll(part)
		if err != nil {
			return nil, nil, terror.Error(terror.ErrParse, "parse error")
		}

		if part.FormName() == filePart && part.FileName() != "" {
			// get mime type
			kind, err := filetype.Match(data)
			if err != nil {
				return nil, nil, terror.Error(terror.ErrParse, "parse error")
			}

			hasher := md5.New()
			_, err = hasher.Write(data)
			if err != nil {
				return nil, nil, terror.Error(err, "hash error")
			}
			hashResult := hasher.Sum(nil)
			hash := hex.EncodeToString(hashResult)

			blob = &types.Blob{
				FileName:      part.FileName(),
				MimeType:      kind.MIME.Value,
				Extension:     kind.Extension,
				FileSizeBytes: int64(len(data)),
				File:          data,
				Hash:          &hash,
				Public:        true,
			}
		} else {
			params[part.FormName()] = string(data)
		}
	}

	return blob, params, nil
}
