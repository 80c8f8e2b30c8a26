package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"catalog-services/types"

	"github.com/bxcodec/faker/v3"
	"github.com/ninja-software/terror/v2"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// placeholderGIF is a valid 1x1 gif used as the seeded product image.
var placeholderGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// Products inserts sample products with placeholder images
func (s *Seeder) Products(ctx context.Context) error {
	productNames := map[string]bool{}

	for i := 0; i < 20; i++ {
		// Get unique name
		var productName string
		for {
			productName = strings.Title(fmt.Sprintf("%s %s", faker.Word(), faker.Word()))
			if !productNames[productName] {
				break
			}
		}
		productNames[productName] = true

		blob := &types.Blob{
			FileName:      productName + ".gif",
			MimeType:      "image/gif",
			Extension:     "gif",
			FileSizeBytes: int64(len(placeholderGIF)),
			File:          placeholderGIF,
			Public:        true,
		}
		err := s.BlobStore.Insert(ctx, blob, "products")
		if err != nil {
			return terror.Error(err, "insert seed blob")
		}

		product := &types.Product{
			Name:        productName,
			Description: null.StringFrom(faker.Sentence()),
			Price:       decimal.New(int64(rand.Intn(100000)+50), -2),
			Stock:       rand.Intn(200),
			Image:       null.StringFrom(blob.FilePath),
		}
		err = s.ProductStore.Insert(ctx, product)
		if err != nil {
			return terror.Error(err, "insert seed product")
		}
	}

	return nil
}
