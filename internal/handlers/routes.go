package handlers

import "github.com/gin-gonic/gin"

// Register mounts every page and API route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.HomePage)
	r.GET("/sitemap.xml", h.SitemapXML)

	api := r.Group("/api")
	{
		api.GET("/currencies", h.Currencies)
		api.POST("/classify", h.Classify)
		api.POST("/verify", h.Verify)
		api.POST("/confirm", h.Confirm)
		api.POST("/uri", h.BuildURI)
		api.GET("/presets", h.Presets)
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/snippet", h.Snippet)
		api.POST("/invoice/pdf", h.InvoicePDF)
		api.POST("/htmx/toast", h.GenericToast)
		api.POST("/htmx/verify", h.VerifyToast)
	}

	s := api.Group("/sessions")
	{
		s.POST("", h.CreateSession)
		s.GET("/:id", h.GetSession)
		s.DELETE("/:id", h.DeleteSession)
		s.PATCH("/:id/input", h.UpdateInput)
		s.POST("/:id/logo", h.UploadLogo)
		s.POST("/:id/presets/:name", h.ApplyPreset)
		s.POST("/:id/randomize", h.Randomize)
		s.PUT("/:id/disposable", h.SetDisposable)
		s.GET("/:id/qr", h.SessionQR)
		s.GET("/:id/preview", h.SessionPreview)
		s.GET("/:id/bundle", h.SessionBundle)
		s.GET("/:id/snippet", h.SessionSnippet)
	}
}
