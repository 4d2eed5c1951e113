package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/chronotours/internal/domain"
)

func bookCmd(c *cli) *cobra.Command {
	var (
		date      string
		travelers int
		paymentID string
	)
	cmd := &cobra.Command{
		Use:   "book [tour-id]",
		Short: "Book a tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			travelDate, err := time.Parse(time.DateOnly, date)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			tour, ok := c.app.Catalog.GetTourByID(args[0])
			if !ok {
				return fmt.Errorf("tour %s: %w", args[0], domain.ErrNotFound)
			}
			total, err := tour.Quote(travelers)
			if err != nil {
				return err
			}

			b, err := c.app.Bookings.CreateBooking(cmd.Context(), domain.BookingRequest{
				TourID:            tour.ID,
				TourTitle:         tour.Title,
				TravelDate:        travelDate,
				NumberOfTravelers: travelers,
				TotalPrice:        total,
				PaymentID:         paymentID,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Booked %s for %d on %s\n", b.TourTitle, b.NumberOfTravelers, b.TravelDate.Format(time.DateOnly))
			fmt.Fprintf(out, "booking: %s\nticket:  %s\ntotal:   %.2f\n", b.ID, b.TicketCode, b.TotalPrice)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "travel date (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&travelers, "travelers", "n", 1, "number of travelers")
	cmd.Flags().StringVar(&paymentID, "payment", "", "payment reference")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func bookingsCmd(c *cli) *cobra.Command {
	var upcoming, past bool
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List your bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := c.app.Session.UserID(); !ok {
				return domain.ErrNotAuthenticated
			}
			var list []domain.Booking
			switch {
			case upcoming:
				list = c.app.Bookings.GetUpcomingBookings()
			case past:
				list = c.app.Bookings.GetPastBookings()
			default:
				list = c.app.Bookings.State().Bookings
			}
			return printBookings(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "only confirmed future trips")
	cmd.Flags().BoolVar(&past, "past", false, "only trips whose date has passed")
	cmd.MarkFlagsMutuallyExclusive("upcoming", "past")
	return cmd
}

func cancelCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [booking-id]",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.app.Bookings.CancelBooking(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Canceled %s (%s)\n", b.ID, b.TourTitle)
			return nil
		},
	}
}

func printBookings(out io.Writer, list []domain.Booking) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOUR\tDATE\tTRAVELERS\tSTATUS\tTICKET")
	for _, b := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			b.ID, b.TourTitle, b.TravelDate.Format(time.DateOnly), b.NumberOfTravelers, b.Status, b.TicketCode)
	}
	return w.Flush()
}
