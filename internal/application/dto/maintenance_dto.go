package dto

// BackupResponse resultado de POST /api/maintenance/backup.
type BackupResponse struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ExportResponse resultado de exportar un reporte al directorio de exportación.
type ExportResponse struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}
