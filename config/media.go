package config

import (
	"fmt"

	"github.com/kurisushop/KurisuShop/media"
)

// Media is the process-wide media gateway client. Tests swap in a fake.
var Media media.Uploader

// MediaFolder is the gateway folder product images land in.
var MediaFolder = "kurisushop_media"

// InitMedia initializes the media gateway client from config.
func InitMedia() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	uploader, err := media.NewCloudinary(config.CloudinaryName, config.CloudinaryKey, config.CloudinarySecret)
	if err != nil {
		panic(fmt.Sprintf("Failed to init media gateway: %v", err))
	}

	Media = uploader
	MediaFolder = config.MediaFolder
}
