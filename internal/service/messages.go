package service

import (
	"context"

	appErrors "github.com/noah-isme/uks-api/pkg/errors"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// User-visible notification texts.
const (
	titleError = "Error"

	titleLoginSuccess = "Login Berhasil"
	titleLoginFailed  = "Login Gagal"
	titleLogout       = "Logout Berhasil"
	descLogout        = "Anda telah keluar dari sistem"

	titleHealthSaved = "Data Kesehatan Tersimpan"
	descHealthSaved  = "Data kesehatan Anda telah berhasil disimpan"

	titleComplaintSent = "Keluhan Terkirim"
	descComplaintSent  = "Keluhan Anda telah berhasil dikirim ke guru kelas"

	titleResponseSent = "Tanggapan Terkirim"
	descResponseSent  = "Tanggapan Anda telah berhasil dikirim ke siswa"

	titleUserCreated = "Pengguna Ditambahkan"
	titleUserUpdated = "Pengguna Diperbarui"
	titleUserDeleted = "Pengguna Dihapus"

	msgRequiredFields   = "Semua kolom wajib diisi"
	msgUsernameTaken    = "Username sudah digunakan"
	msgClassRequired    = "Kelas wajib diisi untuk Siswa dan Guru"
	msgLastAdmin        = "Tidak dapat menghapus admin terakhir"
	msgBadCredentials   = "Username atau password salah"
	msgRoleImmutable    = "Peran pengguna tidak dapat diubah"
	msgInvalidRole      = "Peran tidak valid"
	msgUserNotFound     = "Pengguna tidak ditemukan"
	msgComplaintMissing = "Keluhan tidak ditemukan"
	msgOtherClass       = "Keluhan bukan dari kelas Anda"
	msgSaveFailed       = "Data gagal disimpan, silakan coba lagi"
	msgPasswordTooLong  = "Password maksimal 72 karakter"
	msgInvalidPayload   = "Format data tidak valid"
)

type notifier interface {
	Success(ctx context.Context, title, description string)
	Failure(ctx context.Context, title, description string)
}

type nopNotifier struct{}

func (nopNotifier) Success(context.Context, string, string) {}
func (nopNotifier) Failure(context.Context, string, string) {}

func notifierOrNop(n notifier) notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func payloadError(err error) *appErrors.Error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgInvalidPayload)
}
