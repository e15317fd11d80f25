package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/anjiri1684/skill_swap/apperr"
	config "github.com/anjiri1684/skill_swap/configs"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

const profileUploadFolder = "skillswap_profiles"

// GenerateUploadSignature signs a direct browser upload of a profile image.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "image uploads are not configured")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return apperr.Internal(err)
	}
	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return apperr.Internal(err)
	}
	secret, _ := parsedURL.User.Password()

	params, err := api.StructToParams(uploader.UploadParams{Folder: profileUploadFolder})
	if err != nil {
		return apperr.Internal(err)
	}
	timestamp := time.Now().Unix()
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(params, secret)
	if err != nil {
		return apperr.Internal(err)
	}

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    cld.Config.Cloud.APIKey,
		"cloudName": cld.Config.Cloud.CloudName,
		"folder":    profileUploadFolder,
	})
}
