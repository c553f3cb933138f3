package menu

import (
	"fmt"
	"strings"
)

// OptimizedImageURL injects delivery transformations into a Cloudinary
// URL. Non-Cloudinary URLs pass through untouched. A width of zero means
// no resize; widths are capped by c_limit so images never upscale.
func OptimizedImageURL(url string, width int) string {
	if url == "" {
		return ""
	}
	if !strings.Contains(url, "cloudinary.com") {
		return url
	}

	parts := strings.SplitN(url, "/upload/", 2)
	if len(parts) < 2 {
		return url
	}

	params := []string{"f_auto", "q_auto", "dpr_auto"}
	if width > 0 {
		params = append(params, fmt.Sprintf("c_limit,w_%d", width))
	}
	return parts[0] + "/upload/" + strings.Join(params, ",") + "/" + parts[1]
}
