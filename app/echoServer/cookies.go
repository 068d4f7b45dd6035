// app/echoServer/cookies.go
package echoServer

import (
	"math/rand"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Lucky hands back a sticky lucky number: re-reads the cookie while it
// lives, rolls a new one when it has expired.
func Lucky(c echo.Context) error {
	var num int
	if ck, err := c.Cookie("lucky_num"); err == nil {
		num, _ = strconv.Atoi(ck.Value)
	}
	if num < 1 || num > 100 {
		num = rand.Intn(100) + 1
	}
	c.SetCookie(&http.Cookie{
		Name:   "lucky_num",
		Value:  strconv.Itoa(num),
		MaxAge: 300,
	})
	return c.JSON(http.StatusOK, echo.Map{"lucky_num": num})
}

// Visits keeps a per-client visit counter that rolls over after 3.
func Visits(c echo.Context) error {
	count := 0
	if ck, err := c.Cookie("counter"); err == nil {
		count, _ = strconv.Atoi(ck.Value)
	}
	if count >= 3 {
		count = 0
	}
	count++
	c.SetCookie(&http.Cookie{
		Name:   "counter",
		Value:  strconv.Itoa(count),
		MaxAge: 3600,
	})
	return c.JSON(http.StatusOK, echo.Map{"counter": count})
}
