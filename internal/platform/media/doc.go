// Package media uploads user media to the Cloudinary CDN and builds delivery
// URLs for stored assets.
package media
