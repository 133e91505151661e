package puch

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func testClient(endpoints ...string) *ImageClient {
	return &ImageClient{
		client:    &http.Client{Timeout: time.Second},
		endpoints: endpoints,
	}
}

func fakeImage() []byte {
	return bytes.Repeat([]byte{0xff, 0xd8, 0xff, 0xe0}, 64)
}

func TestFetchImage(t *testing.T) {
	ctx := context.Background()

	Convey("Given an image endpoint", t, func() {
		image := fakeImage()
		encoded := base64.StdEncoding.EncodeToString(image)

		Convey("A direct image response is returned base64 encoded", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/jpeg")
				w.Write(image)
			}))
			defer srv.Close()

			data, err := testClient(srv.URL + "/images/%s").FetchImage(ctx, "img-1")

			So(err, ShouldBeNil)
			So(data, ShouldEqual, encoded)
		})

		Convey("A JSON envelope with inline base64 is unwrapped", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"image_data": encoded})
			}))
			defer srv.Close()

			data, err := testClient(srv.URL + "/images/%s").FetchImage(ctx, "img-2")

			So(err, ShouldBeNil)
			So(data, ShouldEqual, encoded)
		})

		Convey("A JSON envelope with a download URL is followed", func() {
			mux := http.NewServeMux()
			srv := httptest.NewServer(mux)
			defer srv.Close()

			mux.HandleFunc("/images/img-3", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"url": srv.URL + "/raw"})
			})
			mux.HandleFunc("/raw", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/jpeg")
				w.Write(image)
			})

			data, err := testClient(srv.URL + "/images/%s").FetchImage(ctx, "img-3")

			So(err, ShouldBeNil)
			So(data, ShouldEqual, encoded)
		})

		Convey("A plain-text base64 body is accepted", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.Write([]byte(encoded))
			}))
			defer srv.Close()

			data, err := testClient(srv.URL + "/images/%s").FetchImage(ctx, "img-4")

			So(err, ShouldBeNil)
			So(data, ShouldEqual, encoded)
		})

		Convey("A failing endpoint falls through to the next one", func() {
			failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			}))
			defer failing.Close()

			working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				w.Write(image)
			}))
			defer working.Close()

			client := testClient(failing.URL+"/images/%s", working.URL+"/images/%s")
			data, err := client.FetchImage(ctx, "img-5")

			So(err, ShouldBeNil)
			So(data, ShouldEqual, encoded)
		})

		Convey("When every endpoint fails the image is unavailable", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			}))
			defer srv.Close()

			_, err := testClient(srv.URL+"/images/%s", srv.URL+"/files/%s").FetchImage(ctx, "img-6")

			So(err, ShouldEqual, ErrImageUnavailable)
		})

		Convey("Tiny bodies are rejected as error pages", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/jpeg")
				w.Write([]byte("x"))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL + "/images/%s").FetchImage(ctx, "img-7")

			So(err, ShouldEqual, ErrImageUnavailable)
		})

		Convey("An empty image ID is rejected before any request", func() {
			_, err := testClient("http://127.0.0.1:1/images/%s").FetchImage(ctx, "")

			So(err, ShouldNotBeNil)
			So(err, ShouldNotEqual, ErrImageUnavailable)
		})
	})
}
